package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/folio-space/core/internal/client"
)

// ProfileCollection is the singleton profile, edited like a one-record collection.
const ProfileCollection = "profile"

// API is the part of the REST client the console drives.
type API interface {
	List(ctx context.Context, collection string) ([]client.Record, error)
	Create(ctx context.Context, collection string, form *client.Form) (client.Record, error)
	Update(ctx context.Context, collection, id string, form *client.Form) (client.Record, error)
	Delete(ctx context.Context, collection, id string) (string, error)
	Profile(ctx context.Context) (client.Record, error)
	UpsertProfile(ctx context.Context, form *client.Form) (client.Record, error)
}

// Item is one record and its edit state. ID is empty for a record being created.
type Item struct {
	ID     string
	Record client.Record
	State  State
	Draft  map[string]string
	Files  map[string]Staged
	Err    string
}

// Value returns the draft value of field when set, the stored one otherwise.
func (it *Item) Value(field string) string {
	if v, ok := it.Draft[field]; ok {
		return v
	}
	return it.Record.String(field)
}

func (it *Item) clone() Item {
	out := *it
	out.Draft = make(map[string]string, len(it.Draft))
	for k, v := range it.Draft {
		out.Draft[k] = v
	}
	out.Files = make(map[string]Staged, len(it.Files))
	for k, v := range it.Files {
		out.Files[k] = v
	}
	return out
}

type collection struct {
	name  string
	items []*Item
}

func (c *collection) find(id string) *Item {
	for _, it := range c.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (c *collection) active() *Item {
	for _, it := range c.items {
		if it.State != Viewing {
			return it
		}
	}
	return nil
}

// Console is the dashboard state for one admin session.
type Console struct {
	api     API
	session *client.Session

	mu          sync.Mutex
	collections map[string]*collection
	notices     []Notice
	palette     *palette
}

func New(api API, session *client.Session) *Console {
	c := &Console{api: api, session: session, palette: newPalette()}
	c.reset()
	return c
}

func (c *Console) reset() {
	c.collections = make(map[string]*collection, len(client.Collections)+1)
	for _, name := range append([]string{ProfileCollection}, client.Collections...) {
		c.collections[name] = &collection{name: name}
	}
	c.notices = nil
}

func (c *Console) collection(name string) (*collection, error) {
	col, ok := c.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return col, nil
}

func (c *Console) item(name, id string) (*collection, *Item, error) {
	col, err := c.collection(name)
	if err != nil {
		return nil, nil, err
	}
	it := col.find(id)
	if it == nil {
		return col, nil, ErrRecordNotFound
	}
	return col, it, nil
}

// Collections lists the collection names, profile first.
func (c *Console) Collections() []string {
	return append([]string{ProfileCollection}, client.Collections...)
}

// Load replaces a collection with the server's records. Pending edits are dropped.
func (c *Console) Load(ctx context.Context, name string) error {
	c.mu.Lock()
	col, err := c.collection(name)
	if err == nil && col.hasSubmitting() {
		err = ErrBusy
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	var records []client.Record
	if name == ProfileCollection {
		var p client.Record
		p, err = c.api.Profile(ctx)
		if p != nil {
			records = []client.Record{p}
		}
	} else {
		records, err = c.api.List(ctx, name)
	}
	if err != nil {
		c.notifyError(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	col.items = col.items[:0]
	for _, r := range records {
		col.items = append(col.items, &Item{ID: r.ID(), Record: r, State: Viewing})
	}
	return nil
}

func (c *collection) hasSubmitting() bool {
	for _, it := range c.items {
		if it.State == Submitting {
			return true
		}
	}
	return false
}

// Items returns a snapshot of a collection.
func (c *Console) Items(name string) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col, err := c.collection(name)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(col.items))
	for _, it := range col.items {
		out = append(out, it.clone())
	}
	return out, nil
}

// Get returns a snapshot of one item.
func (c *Console) Get(name, id string) (Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, it, err := c.item(name, id)
	if err != nil {
		return Item{}, err
	}
	return it.clone(), nil
}

// BeginEdit moves a record into editing. Only one record per collection
// may be edited at a time.
func (c *Console) BeginEdit(name, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	col, it, err := c.item(name, id)
	if err != nil {
		return err
	}
	if active := col.active(); active != nil {
		if active == it && it.State == Editing {
			return nil
		}
		if active == it {
			return ErrBusy
		}
		return ErrAlreadyEditing
	}
	it.State = Editing
	it.Draft = map[string]string{}
	it.Files = map[string]Staged{}
	it.Err = ""
	return nil
}

// BeginNew starts editing a record that does not exist yet. For the
// profile it edits the existing record when there is one.
func (c *Console) BeginNew(name string) error {
	c.mu.Lock()
	col, err := c.collection(name)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if name == ProfileCollection && len(col.items) > 0 {
		id := col.items[0].ID
		c.mu.Unlock()
		return c.BeginEdit(name, id)
	}
	defer c.mu.Unlock()
	if col.active() != nil {
		return ErrAlreadyEditing
	}
	col.items = append(col.items, &Item{
		Record: client.Record{},
		State:  Editing,
		Draft:  map[string]string{},
		Files:  map[string]Staged{},
	})
	return nil
}

func (c *Console) editing(name, id string) (*Item, error) {
	_, it, err := c.item(name, id)
	if err != nil {
		return nil, err
	}
	switch it.State {
	case Editing:
		return it, nil
	case Submitting:
		return nil, ErrBusy
	default:
		return nil, ErrNotEditing
	}
}

// SetField changes one field of the draft. List fields take comma-separated values.
func (c *Console) SetField(name, id, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.editing(name, id)
	if err != nil {
		return err
	}
	it.Draft[field] = value
	return nil
}

// StageFile selects a local file for field. Nothing is uploaded until Submit.
func (c *Console) StageFile(name, id, field, path string) (Staged, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.editing(name, id)
	if err != nil {
		return Staged{}, err
	}
	s, err := stage(field, path)
	if err != nil {
		return Staged{}, err
	}
	it.Files[field] = s
	return s, nil
}

// Cancel discards the draft. A record that was never created disappears.
func (c *Console) Cancel(name, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	col, it, err := c.item(name, id)
	if err != nil {
		return err
	}
	switch it.State {
	case Submitting:
		return ErrBusy
	case Viewing:
		return nil
	}
	if it.ID == "" {
		col.remove(it)
		return nil
	}
	it.State = Viewing
	it.Draft, it.Files, it.Err = nil, nil, ""
	return nil
}

func (c *collection) remove(target *Item) {
	for i, it := range c.items {
		if it == target {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Submit sends the draft. On success the record returns to viewing with the
// server's copy; on failure it stays in editing with LastError set.
func (c *Console) Submit(ctx context.Context, name, id string) error {
	c.mu.Lock()
	it, err := c.editing(name, id)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	it.State = Submitting
	it.Err = ""
	form := buildForm(it)
	c.mu.Unlock()

	var saved client.Record
	switch {
	case name == ProfileCollection:
		saved, err = c.api.UpsertProfile(ctx, form)
	case id == "":
		saved, err = c.api.Create(ctx, name, form)
	default:
		saved, err = c.api.Update(ctx, name, id, form)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		it.State = Editing
		it.Err = err.Error()
		c.push(NoticeError, it.Err)
		c.expire(err)
		return err
	}
	it.ID = saved.ID()
	it.Record = saved
	it.State = Viewing
	it.Draft, it.Files = nil, nil
	c.push(NoticeSuccess, entityLabel(name)+" saved")
	return nil
}

func buildForm(it *Item) *client.Form {
	form := client.NewForm()
	keys := make([]string, 0, len(it.Draft))
	for k := range it.Draft {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		form.Set(k, it.Draft[k])
	}
	for _, f := range it.Files {
		form.Attach(f.Field, f.Path)
	}
	return form
}

// Delete removes a record that is not being edited.
func (c *Console) Delete(ctx context.Context, name, id string) error {
	if name == ProfileCollection {
		return ErrNotDeletable
	}
	c.mu.Lock()
	_, it, err := c.item(name, id)
	if err == nil && it.State != Viewing {
		err = ErrBusy
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	msg, err := c.api.Delete(ctx, name, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.push(NoticeError, err.Error())
		c.expire(err)
		return err
	}
	if col, cur, ferr := c.item(name, id); ferr == nil {
		col.remove(cur)
	}
	c.push(NoticeSuccess, msg)
	return nil
}

// LastError is the server message from the record's last failed submit.
func (c *Console) LastError(name, id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, it, err := c.item(name, id)
	if err != nil {
		return ""
	}
	return it.Err
}

// TagColor returns the display color of a tag, stable for the session.
func (c *Console) TagColor(tag string) string {
	return c.palette.color(tag)
}

// GoHome is the landing route: it always ends the admin session.
func (c *Console) GoHome() error {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	c.palette.reset()
	if c.session == nil {
		return nil
	}
	return c.session.Clear()
}

// expire notes a session the server rejected. The client already cleared it.
func (c *Console) expire(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		c.push(NoticeInfo, "Session expired, please log in again")
	}
}

func entityLabel(name string) string {
	switch name {
	case ProfileCollection:
		return "Profile"
	case "skills":
		return "Skill"
	case "projects":
		return "Project"
	case "certifications":
		return "Certification"
	case "education":
		return "Education entry"
	case "interests":
		return "Interest"
	default:
		return name
	}
}
