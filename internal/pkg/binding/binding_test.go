package binding

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createDTO struct {
	Name  string                `json:"name"  form:"name"  binding:"required"`
	Order *int                  `json:"order" form:"order"`
	Tags  []string              `json:"tags"  form:"tags"`
	Flag  bool                  `json:"flag"  form:"flag"`
	Image *multipart.FileHeader `json:"-"     form:"image"`
}

type passwordDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func ctxFor(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBindJSON(t *testing.T) {
	var dto createDTO
	err := Bind(ctxFor(jsonRequest(`{"name":"Go","order":3,"tags":["a"]}`)), &dto)
	require.NoError(t, err)
	assert.Equal(t, "Go", dto.Name)
	require.NotNil(t, dto.Order)
	assert.Equal(t, 3, *dto.Order)
	assert.Equal(t, []string{"a"}, dto.Tags)
}

func TestBindMissingRequiredNamesField(t *testing.T) {
	var dto createDTO
	err := Bind(ctxFor(jsonRequest(`{"order":1}`)), &dto)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "name is required", apperr.Message(err))
}

func TestBindEmptyJSONBodyValidates(t *testing.T) {
	var dto createDTO
	err := Bind(ctxFor(jsonRequest("")), &dto)
	assert.Equal(t, "name is required", apperr.Message(err))
}

func TestBindJSONWrongType(t *testing.T) {
	var dto createDTO
	err := Bind(ctxFor(jsonRequest(`{"name":"Go","order":"first"}`)), &dto)
	assert.Equal(t, "order must be an integer", apperr.Message(err))
}

func TestBindMalformedJSON(t *testing.T) {
	var dto createDTO
	err := Bind(ctxFor(jsonRequest(`{"name":`)), &dto)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestBindMinLength(t *testing.T) {
	var dto passwordDTO
	err := Bind(ctxFor(jsonRequest(`{"newPassword":"abc"}`)), &dto)
	assert.Equal(t, "newPassword must be at least 6 characters", apperr.Message(err))
}

func TestBindURLEncodedBadInteger(t *testing.T) {
	form := url.Values{"name": {"Go"}, "order": {"x1"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dto createDTO
	err := Bind(ctxFor(req), &dto)
	assert.Equal(t, "order must be an integer", apperr.Message(err))
}

func TestBindMultipartWithFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Go"))
	require.NoError(t, w.WriteField("order", "2"))
	require.NoError(t, w.WriteField("tags", "a"))
	require.NoError(t, w.WriteField("tags", "b"))
	require.NoError(t, w.WriteField("flag", "true"))
	part, err := w.CreateFormFile("image", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var dto createDTO
	require.NoError(t, Bind(ctxFor(req), &dto))
	assert.Equal(t, 2, *dto.Order)
	assert.Equal(t, []string{"a", "b"}, dto.Tags)
	assert.True(t, dto.Flag)
	require.NotNil(t, File(dto.Image))
	assert.Equal(t, "logo.png", dto.Image.Filename)
}

func TestValueHelpers(t *testing.T) {
	assert.Nil(t, Trim(nil))
	s := "  x "
	assert.Equal(t, "x", *Trim(&s))
	assert.Nil(t, File(&multipart.FileHeader{}))
	assert.Len(t, Files([]*multipart.FileHeader{nil, {Filename: "a"}, {}}), 1)
}
