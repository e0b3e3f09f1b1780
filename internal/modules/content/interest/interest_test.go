package interest

import (
	"net/http"
	"testing"

	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestCreateWithRepeatedProjects(t *testing.T) {
	mh, root := contenttest.Media(t)
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t), mh, media.ImageRule(1<<20))))
	token := contenttest.Token(t)

	w := contenttest.Multipart(r, http.MethodPost, "/api/interests", token,
		map[string]string{"title": "Robotics", "description": "Arms", "projects": "Arm v1, Arm v2"},
		contenttest.Upload{Field: "image", Name: "arm.gif", ContentType: "image/gif", Body: []byte("GIF89a")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := contenttest.Decode[models.InterestModel](t, w)
	assert.Equal(t, models.StringArray{"Arm v1", "Arm v2"}, item.Projects)
	assert.True(t, contenttest.Exists(root, item.Image))

	w = contenttest.JSON(r, http.MethodPut, "/api/interests/"+item.ID, token, map[string]any{"image": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image cannot be empty")

	w = contenttest.JSON(r, http.MethodPut, "/api/interests/"+item.ID, token, map[string]any{"projects": []string{"Arm v3"}})
	require.Equal(t, http.StatusOK, w.Code)
	updated := contenttest.Decode[models.InterestModel](t, w)
	assert.Equal(t, models.StringArray{"Arm v3"}, updated.Projects)
	assert.Equal(t, item.Image, updated.Image)

	require.Equal(t, http.StatusOK, contenttest.JSON(r, http.MethodDelete, "/api/interests/"+item.ID, token, nil).Code)
	assert.False(t, contenttest.Exists(root, item.Image))
}

func TestInterestJSONProjectsKeepCommas(t *testing.T) {
	mh, _ := contenttest.Media(t)
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t), mh, media.ImageRule(1<<20))))
	token := contenttest.Token(t)

	w := contenttest.JSON(r, http.MethodPost, "/api/interests", token, map[string]any{
		"title": "Robotics", "description": "Rovers", "image": "https://cdn.example.com/rover.png",
		"projects": []string{" A rover that maps, plans and drives ", ""},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := contenttest.Decode[models.InterestModel](t, w)
	assert.Equal(t, models.StringArray{"A rover that maps, plans and drives"}, item.Projects)

	w = contenttest.JSON(r, http.MethodPut, "/api/interests/"+item.ID, token, map[string]any{"projects": "Arm v1, Arm v2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item = contenttest.Decode[models.InterestModel](t, w)
	assert.Equal(t, models.StringArray{"Arm v1", "Arm v2"}, item.Projects)
}

func TestInterestOversizedImage(t *testing.T) {
	mh, root := contenttest.Media(t)
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t), mh, media.ImageRule(8))))
	w := contenttest.Multipart(r, http.MethodPost, "/api/interests", contenttest.Token(t),
		map[string]string{"title": "Robotics", "description": "Arms"},
		contenttest.Upload{Field: "image", Name: "arm.png", ContentType: "image/png", Body: []byte("0123456789")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, contenttest.Files(t, root))
}
