package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore uploads to a Cloudinary account; records keep the secure URL.
type CloudinaryStore struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{api: &cld.Upload, folder: strings.Trim(folder, "/")}, nil
}

func (s *CloudinaryStore) Name() string { return "cloudinary" }

func (s *CloudinaryStore) Save(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	key = normalizeKey(key)
	dir, file := path.Split(key)
	ext := path.Ext(file)

	resourceType := "image"
	publicID := strings.TrimSuffix(file, ext)
	if !strings.HasPrefix(contentType, "image/") && ext != ".svg" {
		// raw assets keep their extension in the public id
		resourceType = "raw"
		publicID = file
	}
	folder := strings.Trim(path.Join(s.folder, dir), "/")

	res, err := s.api.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", key, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", key, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no url")
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStore) Owns(publicPath string) bool {
	_, _, ok := cloudinaryPublicID(publicPath)
	return ok
}

func (s *CloudinaryStore) Remove(ctx context.Context, publicPath string) error {
	publicID, resourceType, ok := cloudinaryPublicID(publicPath)
	if !ok {
		return fmt.Errorf("path %q is not a cloudinary url", publicPath)
	}
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}

func (s *CloudinaryStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrRemote
}

// cloudinaryPublicID parses
// https://res.cloudinary.com/<cloud>/<type>/upload/v<version>/<folder>/<id>.<ext>.
func cloudinaryPublicID(raw string) (publicID, resourceType string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == "upload" && i >= 2 {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(parts) {
		return "", "", false
	}
	resourceType = parts[idx-1]
	rest := parts[idx+1:]
	if len(rest) > 1 && len(rest[0]) > 1 && rest[0][0] == 'v' && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}
	publicID = strings.Join(rest, "/")
	if resourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	if publicID == "" {
		return "", "", false
	}
	return publicID, resourceType, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
