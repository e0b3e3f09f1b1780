package project

import (
	"net/http"
	"testing"

	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTagsFromJSONAndForm(t *testing.T) {
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t))))
	token := contenttest.Token(t)

	w := contenttest.JSON(r, http.MethodPost, "/api/projects", token, map[string]any{
		"title": "Folio", "description": "site", "tags": []string{"Go", " gin ", ""},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p := contenttest.Decode[models.ProjectModel](t, w)
	assert.Equal(t, models.StringArray{"Go", "gin"}, p.Tags)
	assert.Empty(t, p.CodeLink)

	w = contenttest.Multipart(r, http.MethodPost, "/api/projects", token, map[string]string{
		"title": "CLI", "description": "tool", "tags": "Go, cobra", "demoLink": "https://demo", "order": "2",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p = contenttest.Decode[models.ProjectModel](t, w)
	assert.Equal(t, models.StringArray{"Go", "cobra"}, p.Tags)
	assert.Equal(t, "https://demo", p.DemoLink)
	assert.Equal(t, 2, p.Order)
}

func TestProjectPartialUpdateKeepsTags(t *testing.T) {
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t))))
	token := contenttest.Token(t)

	w := contenttest.JSON(r, http.MethodPost, "/api/projects", token, map[string]any{
		"title": "Folio", "description": "site", "tags": []string{"Go"}, "codeLink": "https://code",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p := contenttest.Decode[models.ProjectModel](t, w)

	w = contenttest.JSON(r, http.MethodPut, "/api/projects/"+p.ID, token, map[string]any{"demoLink": "https://demo"})
	require.Equal(t, http.StatusOK, w.Code)
	p = contenttest.Decode[models.ProjectModel](t, w)
	assert.Equal(t, models.StringArray{"Go"}, p.Tags)
	assert.Equal(t, "https://code", p.CodeLink)
	assert.Equal(t, "https://demo", p.DemoLink)

	w = contenttest.JSON(r, http.MethodPut, "/api/projects/"+p.ID, token, map[string]any{"tags": []string{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tags":[]`)
}

func TestProjectRequiresDescription(t *testing.T) {
	r := contenttest.Router(NewHandler(NewService(dbtest.New(t))))
	w := contenttest.JSON(r, http.MethodPost, "/api/projects", contenttest.Token(t), map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "description is required")
}
