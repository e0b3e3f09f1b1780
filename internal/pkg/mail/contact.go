package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

const contactNotifyTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:.5rem">
  <h2 style="color:#7c5aff;border-bottom:2px solid #7c5aff;padding-bottom:10px">New Contact Form Submission</h2>
  <div style="background:#f5f5f5;padding:20px;border-radius:8px;margin:20px 0">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
  </div>
  <div style="background:#fff;padding:20px;border-radius:8px;border-left:4px solid #7c5aff">
    <h3 style="color:#333;margin-top:0">Message:</h3>
    <div style="color:#666;line-height:1.6">{{.MessageHTML}}</div>
  </div>
  {{if .Attachments}}
  <div style="margin-top:20px;padding:15px;background:#f0f0f0;border-radius:8px">
    <strong>Attachments ({{len .Attachments}}):</strong>
    <ul style="margin:10px 0;padding-left:20px">
      {{range .Attachments}}<li>{{.}}</li>{{end}}
    </ul>
  </div>
  {{end}}
  <div style="margin-top:30px;padding-top:20px;border-top:1px solid #ddd;color:#999;font-size:12px">
    <p>This email was sent from your portfolio contact form.</p>
    <p>Reply directly to this email to respond to {{.Name}}.</p>
    <p>&copy;{{year}} {{.SiteName}}</p>
  </div>
</body>
</html>`

// ContactNotifyData is the data for contact form notification emails.
type ContactNotifyData struct {
	Name        string
	Email       string
	Subject     string
	Message     string // markdown
	Attachments []string
	SiteName    string
	Files       []Attachment

	MessageHTML template.HTML
}

// RenderMarkdown converts a visitor message to HTML. Raw HTML in the
// source is dropped.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func renderTemplate(tpl string, data interface{}) (string, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderContactNotify renders the owner notification body.
func RenderContactNotify(data ContactNotifyData) (string, error) {
	if strings.TrimSpace(data.SiteName) == "" {
		data.SiteName = "Portfolio"
	}
	rendered, err := RenderMarkdown(data.Message)
	if err != nil {
		return "", err
	}
	data.MessageHTML = rendered
	return renderTemplate(contactNotifyTpl, data)
}

// SendContactNotify forwards a contact submission to the owner. Replies go to the visitor.
func (s *Sender) SendContactNotify(ctx context.Context, data ContactNotifyData) error {
	if !s.Enabled() {
		return nil
	}
	html, err := RenderContactNotify(data)
	if err != nil {
		return err
	}
	return s.Send(ctx, Message{
		To:          []string{s.Recipient()},
		ReplyTo:     data.Email,
		Subject:     fmt.Sprintf("Portfolio Contact: %s", data.Subject),
		HTML:        html,
		Attachments: data.Files,
	})
}
