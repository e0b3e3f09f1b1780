package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// ResendEndpoint is the Resend send-email API.
var ResendEndpoint = "https://api.resend.com/emails"

// Config holds mail provider settings.
type Config struct {
	Enable    bool
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	Recipient string
	UseResend bool
	ResendKey string
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single email to send.
type Message struct {
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender sends emails via SMTP or Resend.
type Sender struct {
	cfg      Config
	client   *http.Client
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config) *Sender {
	return &Sender{
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		sendMail: smtp.SendMail,
	}
}

// Enabled reports whether Send delivers anything.
func (s *Sender) Enabled() bool { return s != nil && s.cfg.Enable }

// Recipient is the owner address notifications go to.
func (s *Sender) Recipient() string {
	if s.cfg.Recipient != "" {
		return s.cfg.Recipient
	}
	return s.cfg.User
}

// Send dispatches an email. Uses Resend if configured, otherwise SMTP.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if !s.Enabled() {
		return nil
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mail has no recipient")
	}
	if s.cfg.UseResend && s.cfg.ResendKey != "" {
		return s.sendResend(ctx, msg)
	}
	return s.sendSMTP(msg)
}

func (s *Sender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.User
}

// sendSMTP sends via net/smtp.
func (s *Sender) sendSMTP(msg Message) error {
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)

	body, err := buildMIME(s.from(), msg)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	return s.sendMail(addr, auth, s.from(), msg.To, body)
}

func buildMIME(from string, msg Message) ([]byte, error) {
	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject)))
	if msg.ReplyTo != "" {
		body.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo))
	}

	if len(msg.Attachments) == 0 {
		body.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		body.WriteString(msg.HTML)
		return body.Bytes(), nil
	}

	mw := multipart.NewWriter(&body)
	body.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mw.Boundary()))

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", "application/octet-stream")
		h.Set("Content-Transfer-Encoding", "base64")
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(wrapBase64(a.Content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return body.Bytes(), nil
}

func wrapBase64(data []byte) []byte {
	enc := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(enc) > 76 {
		out.WriteString(enc[:76])
		out.WriteString("\r\n")
		enc = enc[76:]
	}
	out.WriteString(enc)
	return out.Bytes()
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// sendResend sends via the Resend HTTP API.
func (s *Sender) sendResend(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"from":    s.from(),
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	if msg.ReplyTo != "" {
		payload["reply_to"] = msg.ReplyTo
	}
	if len(msg.Attachments) > 0 {
		atts := make([]resendAttachment, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			atts = append(atts, resendAttachment{Filename: a.Filename, Content: base64.StdEncoding.EncodeToString(a.Content)})
		}
		payload["attachments"] = atts
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ResendEndpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("resend error %d: %s", resp.StatusCode, errResp.Message)
	}
	return nil
}
