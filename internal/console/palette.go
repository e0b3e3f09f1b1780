package console

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

var tagPalette = []string{
	"#2563eb", "#16a34a", "#db2777", "#ea580c",
	"#7c3aed", "#0891b2", "#ca8a04", "#dc2626",
	"#4f46e5", "#059669", "#c026d3", "#65a30d",
}

// palette assigns each tag a display color and remembers it for the session.
type palette struct {
	mu    sync.Mutex
	cache map[string]string
}

func newPalette() *palette { return &palette{cache: make(map[string]string)} }

func (p *palette) color(tag string) string {
	key := strings.ToLower(strings.TrimSpace(tag))
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.cache[key]; ok {
		return c
	}
	c := tagPalette[xxhash.Sum64String(key)%uint64(len(tagPalette))]
	p.cache[key] = c
	return c
}

func (p *palette) reset() {
	p.mu.Lock()
	p.cache = make(map[string]string)
	p.mu.Unlock()
}
