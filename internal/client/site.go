package client

import (
	"context"
	_ "embed"
	"encoding/json"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

//go:embed fallback.json
var fallbackJSON []byte

// Site is the public content the landing page renders.
type Site struct {
	Profile     Record              `json:"profile"`
	Collections map[string][]Record `json:"collections"`
	// Fallbacks names every part served from default content.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

type fallbackContent struct {
	Profile        Record   `json:"profile"`
	Skills         []Record `json:"skills"`
	Projects       []Record `json:"projects"`
	Certifications []Record `json:"certifications"`
	Education      []Record `json:"education"`
	Interests      []Record `json:"interests"`
}

// Defaults returns the built-in content shown when a read fails.
func Defaults() (Record, map[string][]Record) {
	var fb fallbackContent
	if err := json.Unmarshal(fallbackJSON, &fb); err != nil {
		panic("client: invalid fallback.json: " + err.Error())
	}
	return fb.Profile, map[string][]Record{
		"skills":         fb.Skills,
		"projects":       fb.Projects,
		"certifications": fb.Certifications,
		"education":      fb.Education,
		"interests":      fb.Interests,
	}
}

// LoadSite reads the profile and every collection concurrently. Each part
// that fails or comes back empty is replaced by its default, so the public
// page never renders a blank section.
func (c *Client) LoadSite(ctx context.Context) *Site {
	defProfile, defCollections := Defaults()
	site := &Site{Collections: make(map[string][]Record, len(Collections))}

	var mu sync.Mutex
	fallback := func(name string) {
		mu.Lock()
		site.Fallbacks = append(site.Fallbacks, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.Profile(gctx)
		if err != nil || p == nil {
			p = defProfile
			fallback("profile")
		}
		mu.Lock()
		site.Profile = p
		mu.Unlock()
		return nil
	})
	for _, name := range Collections {
		g.Go(func() error {
			records, err := c.List(gctx, name)
			if err != nil || len(records) == 0 {
				records = defCollections[name]
				fallback(name)
			}
			mu.Lock()
			site.Collections[name] = records
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(site.Fallbacks)
	return site
}
