package legacy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// doc wraps one decoded legacy document.
type doc bson.M

func (d doc) id() string {
	switch v := d["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d doc) str(key string) string {
	switch v := d[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	default:
		return fmt.Sprint(v)
	}
}

func (d doc) int(key string) int {
	switch v := d[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}

func (d doc) int64(key string) int64 {
	switch v := d[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return int64(d.int(key))
	}
}

func (d doc) time(key string) time.Time {
	switch v := d[key].(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case time.Time:
		return v.UTC()
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (d doc) strings(key string) models.StringArray {
	var items []string
	switch v := d[key].(type) {
	case primitive.A:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		return models.SplitList(v)
	}
	return models.CleanList(items)
}

func (d doc) sub(key string) doc {
	return asDoc(d[key])
}

func (d doc) list(key string) []doc {
	var raw []interface{}
	switch v := d[key].(type) {
	case primitive.A:
		raw = v
	case []interface{}:
		raw = v
	}
	out := make([]doc, 0, len(raw))
	for _, item := range raw {
		if sub := asDoc(item); sub != nil {
			out = append(out, sub)
		}
	}
	return out
}

func asDoc(v interface{}) doc {
	switch t := v.(type) {
	case bson.M:
		return doc(t)
	case map[string]interface{}:
		return doc(t)
	case primitive.D:
		return doc(t.Map())
	default:
		return nil
	}
}

// base carries the legacy id and timestamps over.
func (d doc) base() models.Base {
	return models.Base{
		ID:        d.id(),
		CreatedAt: d.time("createdAt"),
		UpdatedAt: d.time("updatedAt"),
	}
}

// mediaPath turns a stored upload path into a public path. URLs pass through.
func mediaPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + strings.TrimPrefix(p, "./")
}
