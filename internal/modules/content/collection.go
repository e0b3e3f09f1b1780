// Package content holds the storage helpers shared by the portfolio
// collections. Each collection package owns its DTOs and routes.
package content

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Collection is a gorm-backed set of records listed by their order key.
type Collection[T any] struct {
	db     *gorm.DB
	entity string
}

// NewCollection binds T's table. entity names the record in messages ("Skill").
func NewCollection[T any](db *gorm.DB, entity string) *Collection[T] {
	return &Collection[T]{db: db, entity: entity}
}

func (c *Collection[T]) Entity() string { return c.entity }

func (c *Collection[T]) notFound() error {
	return apperr.NotFound(c.entity + " not found")
}

// List returns every record, order ascending then insertion order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := c.db.WithContext(ctx).Order(models.ListOrder).Find(&items).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := c.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.notFound()
		}
		return nil, apperr.Store(err)
	}
	return &item, nil
}

func (c *Collection[T]) Create(ctx context.Context, item *T) error {
	return apperr.Store(c.db.WithContext(ctx).Create(item).Error)
}

// Update applies column updates to one record and returns the stored result.
// An empty update map only checks the record exists.
func (c *Collection[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return item, nil
	}
	if err := c.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return c.Get(ctx, id)
}

// Delete removes one record and returns it so callers can release its files.
func (c *Collection[T]) Delete(ctx context.Context, id string) (*T, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := c.db.WithContext(ctx).Delete(item)
	if res.Error != nil {
		return nil, apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, c.notFound()
	}
	return item, nil
}

// Count reports how many live records exist.
func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	var zero T
	if err := c.db.WithContext(ctx).Model(&zero).Count(&n).Error; err != nil {
		return 0, apperr.Store(err)
	}
	return n, nil
}
