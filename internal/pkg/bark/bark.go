// Package bark pushes contact notifications to an iOS device through the Bark API.
package bark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/folio-space/core/internal/pkg/mail"
)

const (
	DefaultServer   = "https://api.day.app"
	defaultThrottle = 10 * time.Minute
	maxBodyRunes    = 140
)

// Service sends Bark pushes. A Service without a device key is a no-op.
type Service struct {
	key      string
	server   string
	site     string
	client   *http.Client
	throttle time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastPush map[string]time.Time
}

// New returns a Service for the device key. An empty server uses DefaultServer.
func New(key, server, site string) *Service {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	if server == "" {
		server = DefaultServer
	}
	if site == "" {
		site = "Portfolio"
	}
	return &Service{
		key:      strings.TrimSpace(key),
		server:   server,
		site:     site,
		client:   &http.Client{Timeout: 10 * time.Second},
		throttle: defaultThrottle,
		now:      time.Now,
		lastPush: make(map[string]time.Time),
	}
}

func (s *Service) Enabled() bool { return s != nil && s.key != "" }

type pushPayload struct {
	DeviceKey string `json:"device_key"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Group     string `json:"group,omitempty"`
}

// Push sends one notification.
func (s *Service) Push(ctx context.Context, title, body string) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(pushPayload{
		DeviceKey: s.key,
		Title:     fmt.Sprintf("[%s] %s", s.site, title),
		Body:      body,
		Group:     s.site,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.server+"/push", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("bark: push failed with status %d", resp.StatusCode)
	}
	return nil
}

// SendContactNotify pushes a summary of a contact message. Repeated messages
// from the same sender within the throttle window are not pushed again.
func (s *Service) SendContactNotify(ctx context.Context, data mail.ContactNotifyData) error {
	if !s.Enabled() {
		return nil
	}
	if !s.allow(strings.ToLower(strings.TrimSpace(data.Email))) {
		return nil
	}

	body := fmt.Sprintf("%s <%s>\n%s", data.Name, data.Email, truncate(data.Message, maxBodyRunes))
	if n := len(data.Attachments); n > 0 {
		body += fmt.Sprintf("\n%d attachment(s)", n)
	}
	return s.Push(ctx, "New message: "+data.Subject, body)
}

// allow records a push for sender unless one went out within the throttle
// window. Senders outside the window are forgotten.
func (s *Service) allow(sender string) bool {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, last := range s.lastPush {
		if now.Sub(last) >= s.throttle {
			delete(s.lastPush, k)
		}
	}
	if _, ok := s.lastPush[sender]; ok {
		return false
	}
	s.lastPush[sender] = now
	return true
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
