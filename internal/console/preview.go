package console

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// sniff reports the content type shown in the file preview.
func sniff(r io.Reader, name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(r, head)
	return http.DetectContentType(head[:n])
}
