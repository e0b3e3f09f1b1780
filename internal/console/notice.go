package console

import "time"

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient toast.
type Notice struct {
	Kind    NoticeKind
	Message string
	At      time.Time
}

const maxNotices = 20

// push appends a notice. Callers hold c.mu.
func (c *Console) push(kind NoticeKind, msg string) {
	c.notices = append(c.notices, Notice{Kind: kind, Message: msg, At: time.Now()})
	if over := len(c.notices) - maxNotices; over > 0 {
		c.notices = c.notices[over:]
	}
}

func (c *Console) notifyError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.push(NoticeError, err.Error())
	c.expire(err)
}

// Notices drains the pending notices, oldest first.
func (c *Console) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}
