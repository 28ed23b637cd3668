package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTooLarge    = errors.New("image file size exceeds the limit")
	ErrBadType     = errors.New("only image files (JPEG, JPG, PNG, GIF) are allowed")
	ErrNoFile      = errors.New("no file selected for upload")
	ErrStoreFailed = errors.New("store uploaded file failed")
)

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// Saver writes bounded image uploads into a single directory under
// collision-resistant names.
type Saver struct {
	dir     string
	maxSize int64
}

func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &Saver{dir: dir, maxSize: maxSize}, nil
}

// Save validates size and type and writes the file. The returned name is the
// filename only; callers build the public URL from it.
func (s *Saver) Save(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", ErrNoFile
	}
	if header.Size > s.maxSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	wantMIME, ok := allowedTypes[ext]
	if !ok {
		return "", ErrBadType
	}
	// The declared content type must agree with the extension; both are
	// client-controlled, so this is an allow-list, not proof.
	if declared := header.Header.Get("Content-Type"); declared != "" && declared != wantMIME {
		return "", ErrBadType
	}

	name := fmt.Sprintf("photo-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	defer dst.Close()

	// Size ceiling enforced again while copying; header.Size is client data.
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1)); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if info, err := dst.Stat(); err == nil && info.Size() > s.maxSize {
		_ = os.Remove(dst.Name())
		return "", ErrTooLarge
	}

	return name, nil
}

func (s *Saver) Dir() string {
	return s.dir
}
