package console

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/folio-space/core/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	records  map[string][]client.Record
	profile  client.Record
	failWith error
	forms    []*client.Form
	block    chan struct{}
	entered  chan struct{}
	nextID   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{records: map[string][]client.Record{
		"skills": {
			{"id": "s1", "name": "Go", "logo": "go.svg", "order": float64(0)},
			{"id": "s2", "name": "SQL", "logo": "sql.svg", "order": float64(1)},
		},
	}}
}

func (f *fakeAPI) List(_ context.Context, collection string) ([]client.Record, error) {
	return f.records[collection], nil
}

func (f *fakeAPI) save(form *client.Form, base client.Record) (client.Record, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.forms = append(f.forms, form)
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := client.Record{}
	for k, v := range base {
		out[k] = v
	}
	if out.ID() == "" {
		f.nextID++
		out["id"] = "new" + strconv.Itoa(f.nextID)
	}
	out["saved"] = true
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, _ string, form *client.Form) (client.Record, error) {
	return f.save(form, nil)
}

func (f *fakeAPI) Update(_ context.Context, collection, id string, form *client.Form) (client.Record, error) {
	for _, r := range f.records[collection] {
		if r.ID() == id {
			return f.save(form, r)
		}
	}
	return nil, &client.APIError{Status: 404, Message: "Skill not found"}
}

func (f *fakeAPI) Delete(_ context.Context, _, _ string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return "Skill deleted", nil
}

func (f *fakeAPI) Profile(context.Context) (client.Record, error) { return f.profile, nil }

func (f *fakeAPI) UpsertProfile(_ context.Context, form *client.Form) (client.Record, error) {
	return f.save(form, f.profile)
}

func loaded(t *testing.T, api *fakeAPI) *Console {
	t.Helper()
	c := New(api, client.NewSession())
	require.NoError(t, c.Load(context.Background(), "skills"))
	return c
}

func TestOneEditPerCollection(t *testing.T) {
	c := loaded(t, newFakeAPI())

	require.NoError(t, c.BeginEdit("skills", "s1"))
	assert.ErrorIs(t, c.BeginEdit("skills", "s2"), ErrAlreadyEditing)
	assert.ErrorIs(t, c.BeginNew("skills"), ErrAlreadyEditing)
	assert.ErrorIs(t, c.SetField("skills", "s2", "name", "x"), ErrNotEditing)

	require.NoError(t, c.BeginNew("projects"))

	require.NoError(t, c.Cancel("skills", "s1"))
	require.NoError(t, c.BeginEdit("skills", "s2"))

	items, err := c.Items("skills")
	require.NoError(t, err)
	assert.Equal(t, Viewing, items[0].State)
	assert.Equal(t, Editing, items[1].State)
}

func TestSubmitSuccess(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api)

	require.NoError(t, c.BeginEdit("skills", "s1"))
	require.NoError(t, c.SetField("skills", "s1", "name", "Go 2"))
	it, err := c.Get("skills", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Go 2", it.Value("name"))
	assert.Equal(t, "go.svg", it.Value("logo"))

	require.NoError(t, c.Submit(context.Background(), "skills", "s1"))
	it, err = c.Get("skills", "s1")
	require.NoError(t, err)
	assert.Equal(t, Viewing, it.State)
	assert.Equal(t, true, it.Record["saved"])
	assert.Empty(t, it.Draft)

	notices := c.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Kind)
	assert.Equal(t, "Skill saved", notices[0].Message)
	assert.Empty(t, c.Notices())
}

func TestSubmitFailureKeepsEditing(t *testing.T) {
	api := newFakeAPI()
	api.failWith = &client.APIError{Status: 400, Message: "name cannot be empty"}
	c := loaded(t, api)

	require.NoError(t, c.BeginEdit("skills", "s1"))
	require.NoError(t, c.SetField("skills", "s1", "name", ""))
	err := c.Submit(context.Background(), "skills", "s1")
	require.Error(t, err)

	it, gerr := c.Get("skills", "s1")
	require.NoError(t, gerr)
	assert.Equal(t, Editing, it.State)
	assert.Equal(t, "", it.Value("name"))
	assert.Equal(t, "name cannot be empty", c.LastError("skills", "s1"))
	assert.Equal(t, NoticeError, c.Notices()[0].Kind)
}

func TestSubmittingIsExclusive(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	api.entered = make(chan struct{})
	c := loaded(t, api)
	require.NoError(t, c.BeginEdit("skills", "s1"))

	done := make(chan error)
	go func() { done <- c.Submit(context.Background(), "skills", "s1") }()
	<-api.entered

	it, err := c.Get("skills", "s1")
	require.NoError(t, err)
	assert.Equal(t, Submitting, it.State)
	assert.ErrorIs(t, c.SetField("skills", "s1", "name", "x"), ErrBusy)
	assert.ErrorIs(t, c.Cancel("skills", "s1"), ErrBusy)
	assert.ErrorIs(t, c.BeginEdit("skills", "s2"), ErrAlreadyEditing)
	assert.ErrorIs(t, c.Load(context.Background(), "skills"), ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
}

func TestCreateAndCancelNew(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api)

	require.NoError(t, c.BeginNew("skills"))
	require.NoError(t, c.Cancel("skills", ""))
	items, _ := c.Items("skills")
	assert.Len(t, items, 2)

	require.NoError(t, c.BeginNew("skills"))
	require.NoError(t, c.SetField("skills", "", "name", "Rust"))
	require.NoError(t, c.Submit(context.Background(), "skills", ""))
	items, _ = c.Items("skills")
	require.Len(t, items, 3)
	assert.Equal(t, "new1", items[2].ID)
	assert.Equal(t, Viewing, items[2].State)
}

func TestStageFileIsLocalUntilSubmit(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api)
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o644))

	_, err := c.StageFile("skills", "s1", "image", path)
	assert.ErrorIs(t, err, ErrNotEditing)

	require.NoError(t, c.BeginEdit("skills", "s1"))
	staged, err := c.StageFile("skills", "s1", "image", path)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", staged.Name)
	assert.Equal(t, int64(8), staged.Size)
	assert.Equal(t, "image/png", staged.ContentType)
	assert.Empty(t, api.forms)

	_, err = c.StageFile("skills", "s1", "image", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	require.NoError(t, c.Submit(context.Background(), "skills", "s1"))
	assert.Len(t, api.forms, 1)
}

func TestDelete(t *testing.T) {
	c := loaded(t, newFakeAPI())
	require.NoError(t, c.BeginEdit("skills", "s1"))
	assert.ErrorIs(t, c.Delete(context.Background(), "skills", "s1"), ErrBusy)

	require.NoError(t, c.Delete(context.Background(), "skills", "s2"))
	items, _ := c.Items("skills")
	require.Len(t, items, 1)
	assert.Equal(t, "s1", items[0].ID)
	assert.ErrorIs(t, c.Delete(context.Background(), ProfileCollection, "p"), ErrNotDeletable)
}

func TestProfileUpsert(t *testing.T) {
	api := newFakeAPI()
	c := New(api, client.NewSession())
	require.NoError(t, c.Load(context.Background(), ProfileCollection))
	items, _ := c.Items(ProfileCollection)
	assert.Empty(t, items)

	require.NoError(t, c.BeginNew(ProfileCollection))
	require.NoError(t, c.SetField(ProfileCollection, "", "name", "Jane"))
	require.NoError(t, c.Submit(context.Background(), ProfileCollection, ""))

	items, _ = c.Items(ProfileCollection)
	require.Len(t, items, 1)
	require.NoError(t, c.BeginNew(ProfileCollection))
	it, _ := c.Get(ProfileCollection, items[0].ID)
	assert.Equal(t, Editing, it.State)
}

func TestUnauthorizedSubmitNotifies(t *testing.T) {
	api := newFakeAPI()
	api.failWith = &client.APIError{Status: 401, Message: "Unauthorized"}
	c := loaded(t, api)
	require.NoError(t, c.BeginEdit("skills", "s1"))
	require.ErrorIs(t, c.Submit(context.Background(), "skills", "s1"), client.ErrUnauthorized)

	notices := c.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, NoticeInfo, notices[1].Kind)
}

func TestTagColorsStable(t *testing.T) {
	c := New(newFakeAPI(), nil)
	a := c.TagColor("Go")
	assert.Equal(t, a, c.TagColor(" go "))
	assert.Contains(t, tagPalette, a)
	assert.Equal(t, a, New(newFakeAPI(), nil).TagColor("Go"))
}

func TestGoHomeEndsSession(t *testing.T) {
	session := client.NewSession()
	require.NoError(t, session.Set("tok"))
	c := New(newFakeAPI(), session)
	require.NoError(t, c.Load(context.Background(), "skills"))
	require.NoError(t, c.BeginEdit("skills", "s1"))

	require.NoError(t, c.GoHome())
	assert.False(t, session.Authenticated())
	items, err := c.Items("skills")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUnknownCollection(t *testing.T) {
	c := New(newFakeAPI(), nil)
	assert.ErrorIs(t, c.BeginNew("posts"), ErrUnknownCollection)
	_, err := c.Items("posts")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}
