package profile

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := dbtest.New(t)
	mh, root := contenttest.Media(t)
	return contenttest.Router(NewHandler(NewService(db, mh, media.ImageRule(1<<20)))), db, root
}

func TestProfileEmptyObject(t *testing.T) {
	r, _, _ := setup(t)
	w := contenttest.JSON(r, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestProfileUpsertKeepsSingleRecord(t *testing.T) {
	r, db, _ := setup(t)
	token := contenttest.Token(t)

	w := contenttest.JSON(r, http.MethodPost, "/api/profile", token, map[string]any{
		"name": "Ada", "email": "ada@example.com",
		"about": map[string]string{"paragraph1": "one", "paragraph2": "two"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = contenttest.JSON(r, http.MethodPut, "/api/profile", token, map[string]any{
		"name": "Grace", "about": map[string]string{"paragraph2": "three"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	p := contenttest.Decode[models.ProfileModel](t, w)
	assert.Equal(t, "Grace", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, models.About{Paragraph1: "one", Paragraph2: "three"}, p.About)

	var n int64
	require.NoError(t, db.Model(&models.ProfileModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	got := contenttest.Decode[models.ProfileModel](t, contenttest.JSON(r, http.MethodGet, "/api/profile", "", nil))
	assert.Equal(t, "Grace", got.Name)
}

func TestProfileConcurrentFirstUpserts(t *testing.T) {
	db := dbtest.New(t)
	mh, _ := contenttest.Media(t)
	svc := NewService(db, mh, media.ImageRule(1<<20))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Owner %d", i)
			_, err := svc.Upsert(context.Background(), &UpsertProfileDTO{Name: &name})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&models.ProfileModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestProfileCreateLosingInsertUpdatesWinner(t *testing.T) {
	db := dbtest.New(t)
	mh, _ := contenttest.Media(t)
	svc := NewService(db, mh, media.ImageRule(1<<20))
	ctx := context.Background()

	first, err := svc.create(ctx, content.Updates{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileID, first.ID)

	second, err := svc.create(ctx, content.Updates{"title": "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileID, second.ID)
	assert.Equal(t, "Ada", second.Name)
	assert.Equal(t, "Engineer", second.Title)

	var n int64
	require.NoError(t, db.Model(&models.ProfileModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestProfileMultipartAboutString(t *testing.T) {
	r, _, _ := setup(t)
	token := contenttest.Token(t)

	w := contenttest.Multipart(r, http.MethodPost, "/api/profile", token, map[string]string{
		"name": "Ada", "about": `{"paragraph1":"p1","paragraph2":"p2"}`,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := contenttest.Decode[models.ProfileModel](t, w)
	assert.Equal(t, "p1", p.About.Paragraph1)

	w = contenttest.Multipart(r, http.MethodPost, "/api/profile", token, map[string]string{"about": "not json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfilePhotoLifecycle(t *testing.T) {
	r, _, root := setup(t)
	token := contenttest.Token(t)
	photo := func(name string) contenttest.Upload {
		return contenttest.Upload{Field: "image", Name: name, ContentType: "image/png", Body: contenttest.PNG}
	}

	w := contenttest.Multipart(r, http.MethodPost, "/api/profile", token, map[string]string{"name": "Ada"}, photo("me.png"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := contenttest.Decode[models.ProfileModel](t, w).Photo
	assert.Regexp(t, `^/uploads/.+\.png$`, first)
	assert.True(t, contenttest.Exists(root, first))

	// an upload wins over deletePhoto
	w = contenttest.Multipart(r, http.MethodPost, "/api/profile", token, map[string]string{"deletePhoto": "true"}, photo("me2.png"))
	require.Equal(t, http.StatusOK, w.Code)
	second := contenttest.Decode[models.ProfileModel](t, w).Photo
	assert.NotEqual(t, first, second)
	assert.False(t, contenttest.Exists(root, first))
	assert.True(t, contenttest.Exists(root, second))

	w = contenttest.JSON(r, http.MethodPost, "/api/profile", token, map[string]any{"deletePhoto": true})
	require.Equal(t, http.StatusOK, w.Code)
	p := contenttest.Decode[models.ProfileModel](t, w)
	assert.Empty(t, p.Photo)
	assert.Equal(t, "Ada", p.Name)
	assert.Empty(t, contenttest.Files(t, root))
}

func TestProfileRejectsBadPhotoBeforeWriting(t *testing.T) {
	r, db, root := setup(t)
	w := contenttest.Multipart(r, http.MethodPost, "/api/profile", contenttest.Token(t), map[string]string{"name": "Ada"},
		contenttest.Upload{Field: "image", Name: "me.pdf", ContentType: "application/pdf", Body: []byte("%PDF")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, contenttest.Files(t, root))

	p, err := NewService(db, nil, media.ImageRule(1)).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}
