package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/pkg/logging"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const readyTimeout = 3 * time.Second

// Mailer is the part of the mail sender the test endpoint needs.
type Mailer interface {
	Enabled() bool
	Recipient() string
	Send(ctx context.Context, msg mail.Message) error
}

type logItem struct {
	Size     string `json:"size"`
	Filename string `json:"filename"`
	Created  int64  `json:"created"`
}

type Handler struct {
	db     *gorm.DB
	logDir string
	mailer Mailer
	now    func() time.Time
}

func NewHandler(db *gorm.DB, logDir string, mailer Mailer) *Handler {
	return &Handler{db: db, logDir: logDir, mailer: mailer, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "message": "Server is running"})
	})
	rg.GET("/health/ready", h.ready)

	admin := rg.Group("/health", authMW)
	admin.GET("/email/test", h.emailTest)
	admin.GET("/log/list", h.listLogs)
	admin.GET("/log", h.readLog)
	admin.DELETE("/log", h.deleteLog)
}

func (h *Handler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()
	if err := database.Ping(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": false})
		return
	}
	response.OK(c, gin.H{"status": "ok", "database": true})
}

func (h *Handler) emailTest(c *gin.Context) {
	if h.mailer == nil || !h.mailer.Enabled() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "mail is not enabled"})
		return
	}
	if h.mailer.Recipient() == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "recipient email not set"})
		return
	}
	err := h.mailer.Send(c.Request.Context(), mail.Message{
		To:      []string{h.mailer.Recipient()},
		Subject: "Portfolio mail test",
		HTML:    "<h1>Mail is configured.</h1><p>Contact form notifications will arrive at this address.</p>",
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}
	response.OK(c, gin.H{"ok": true})
}

func (h *Handler) listLogs(c *gin.Context) {
	entries, err := os.ReadDir(h.logDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			response.OK(c, []logItem{})
			return
		}
		response.Error(c, err)
		return
	}

	items := make([]logItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, logItem{
			Size:     formatByteSize(info.Size()),
			Filename: entry.Name(),
			Created:  info.ModTime().UnixMilli(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Created > items[j].Created
	})
	response.OK(c, items)
}

// logPath resolves a log file name inside the log dir; path parts are dropped.
func (h *Handler) logPath(c *gin.Context) (string, bool) {
	name := filepath.Base(strings.TrimSpace(c.Query("filename")))
	if name == "" || name == "." || name == string(filepath.Separator) {
		response.BadRequest(c, "filename is required")
		return "", false
	}
	return filepath.Join(h.logDir, name), true
}

func (h *Handler) readLog(c *gin.Context) {
	p, ok := h.logPath(c)
	if !ok {
		return
	}
	data, err := os.ReadFile(p)
	if err != nil {
		response.NotFoundMsg(c, "log file not found")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// deleteLog removes a log file. Today's file is truncated instead, since
// the process is still appending to it.
func (h *Handler) deleteLog(c *gin.Context) {
	p, ok := h.logPath(c)
	if !ok {
		return
	}
	if filepath.Base(p) == logging.DailyFilename(h.now()) {
		if err := os.WriteFile(p, nil, 0o644); err != nil && !errors.Is(err, os.ErrNotExist) {
			response.Error(c, err)
			return
		}
	} else if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func formatByteSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
