package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize caps an image attachment at 5 MiB.
const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge = errors.New("ukuran gambar maksimal 5MB")
	ErrNotImage      = errors.New("file harus berupa gambar")
)

// ImageUpload is a replacement product image.
type ImageUpload struct {
	FileName  string
	MediaType string
	Content   []byte
}

// ReadImage loads an image from disk, refusing oversized files before
// reading them.
func ReadImage(path string) (ImageUpload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ImageUpload{}, err
	}
	if info.Size() > MaxImageSize {
		return ImageUpload{}, ErrImageTooLarge
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ImageUpload{}, err
	}
	return ImageUpload{
		FileName:  filepath.Base(path),
		MediaType: mimetype.Detect(b).String(),
		Content:   b,
	}, nil
}

// Type returns the declared media type, or the sniffed one when none was
// declared.
func (u ImageUpload) Type() string {
	if u.MediaType != "" {
		return u.MediaType
	}
	return mimetype.Detect(u.Content).String()
}

func (u ImageUpload) Validate() error {
	if len(u.Content) > MaxImageSize {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(u.Type(), "image/") {
		return fmt.Errorf("%w: %s", ErrNotImage, u.Type())
	}
	return nil
}

// Encoded returns the content as standard base64 without a data URL prefix.
func (u ImageUpload) Encoded() string {
	return base64.StdEncoding.EncodeToString(u.Content)
}
