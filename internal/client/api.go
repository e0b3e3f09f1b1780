package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/folio-space/core/internal/models"
)

// Record is one content record as the API returns it.
type Record map[string]any

func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// String returns field key rendered as text.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PasswordInfo struct {
	HasPassword    bool   `json:"hasPassword"`
	PasswordMasked string `json:"passwordMasked"`
}

// Login authenticates and stores the token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AdminInfo, error) {
	var out struct {
		Token string    `json:"token"`
		Admin AdminInfo `json:"admin"`
	}
	err := c.sendJSON(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.session.Set(out.Token); err != nil {
		return nil, err
	}
	return &out.Admin, nil
}

// Logout forgets the token. The server keeps no session state.
func (c *Client) Logout() error { return c.session.Clear() }

func (c *Client) Me(ctx context.Context) (*AdminInfo, error) {
	var out AdminInfo
	if err := c.getJSON(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PasswordInfo(ctx context.Context) (*PasswordInfo, error) {
	var out PasswordInfo
	if err := c.getJSON(ctx, "/auth/password-info", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.sendJSON(ctx, http.MethodPost, "/auth/change-password",
		map[string]string{"currentPassword": current, "newPassword": next}, &out)
	return out.Message, err
}

// List returns a collection in display order.
func (c *Client) List(ctx context.Context, collection string) ([]Record, error) {
	var out []Record
	if err := c.getJSON(ctx, "/"+url.PathEscape(collection), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, collection string, form *Form) (Record, error) {
	var out Record
	if err := c.sendForm(ctx, http.MethodPost, "/"+url.PathEscape(collection), form, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, collection, id string, form *Form) (Record, error) {
	var out Record
	if err := c.sendForm(ctx, http.MethodPut, "/"+url.PathEscape(collection)+"/"+url.PathEscape(id), form, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, collection, id string) (string, error) {
	return c.delete(ctx, "/"+url.PathEscape(collection)+"/"+url.PathEscape(id))
}

// Profile returns nil when no profile exists yet.
func (c *Client) Profile(ctx context.Context) (Record, error) {
	var out Record
	if err := c.getJSON(ctx, "/profile", &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (c *Client) UpsertProfile(ctx context.Context, form *Form) (Record, error) {
	var out Record
	if err := c.sendForm(ctx, http.MethodPut, "/profile", form, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CurrentResume(ctx context.Context) (*models.ResumeModel, error) {
	var out models.ResumeModel
	if err := c.getJSON(ctx, "/resume", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResumeHistory(ctx context.Context) ([]models.ResumeModel, error) {
	var out []models.ResumeModel
	if err := c.getJSON(ctx, "/resume/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadResume sends the PDF at path as the new current resume.
func (c *Client) UploadResume(ctx context.Context, path string) (*models.ResumeModel, error) {
	var out models.ResumeModel
	if err := c.sendForm(ctx, http.MethodPost, "/resume", NewForm().Attach("resume", path), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResume(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, "/resume/"+url.PathEscape(id))
}

// ContactForm is a public contact submission.
type ContactForm struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	Attachments []string // local paths
}

func (c *Client) SubmitContact(ctx context.Context, in ContactForm) (*models.ContactModel, error) {
	form := NewForm().
		Set("name", in.Name).
		Set("email", in.Email).
		Set("subject", in.Subject).
		Set("message", in.Message)
	for _, p := range in.Attachments {
		form.Attach("attachments", p)
	}
	var out struct {
		Contact models.ContactModel `json:"contact"`
	}
	if err := c.sendForm(ctx, http.MethodPost, "/contact", form, &out); err != nil {
		return nil, err
	}
	return &out.Contact, nil
}

func (c *Client) Messages(ctx context.Context) ([]models.ContactModel, error) {
	var out []models.ContactModel
	if err := c.getJSON(ctx, "/contact", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil)
}
