package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yeremiapane/foodiego/utils"
)

var (
	ErrNoFile       = errors.New("No file uploaded")
	ErrNotImage     = errors.New("File must be an image")
	ErrUploadFailed = errors.New("Failed to upload image")
)

// UploadURLPrefix is the public path uploaded files are served from.
const UploadURLPrefix = "/uploads/"

var whitespace = regexp.MustCompile(`\s+`)

// UploadService stores uploaded images on local disk.
type UploadService struct {
	dir string
	now func() time.Time
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir, now: time.Now}
}

// Dir is the directory uploaded files are written to.
func (s *UploadService) Dir() string {
	return s.dir
}

// StoredName builds the on-disk name: "<unix millis>-<name>", whitespace
// in the original name replaced by '-'.
func StoredName(t time.Time, original string) string {
	base := filepath.Base(original)
	return fmt.Sprintf("%d-%s", t.UnixMilli(), whitespace.ReplaceAllString(base, "-"))
}

// Destination validates an uploaded image and returns the name it is
// stored under and its path on disk.
func (s *UploadService) Destination(fh *multipart.FileHeader) (name, path string, err error) {
	if fh == nil {
		return "", "", ErrNoFile
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", "", ErrNotImage
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", UploadError(err)
	}
	name = StoredName(s.now(), fh.Filename)
	return name, filepath.Join(s.dir, name), nil
}

// UploadURL is the public address of a stored file.
func UploadURL(name string) string {
	return UploadURLPrefix + name
}

// UploadError logs a storage failure and wraps it as ErrUploadFailed.
func UploadError(err error) error {
	utils.ErrorLogger.WithError(err).Error("Upload error")
	return fmt.Errorf("%w: %v", ErrUploadFailed, err)
}
