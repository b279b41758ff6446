package product

import (
	"encoding/base64"
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/category"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

// maxImageBytes caps a decoded image attachment at 5 MiB.
const maxImageBytes = 5 << 20

// ValidationError maps a field name to what is wrong with it.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, k := range sortedKeys(v) {
		parts = append(parts, k+": "+v[k])
	}
	return strings.Join(parts, "; ")
}

func validateProductPayload(in envelope.ProductData) ValidationError {
	errs := ValidationError{}
	if strings.TrimSpace(in.ProductName) == "" {
		errs["product_name"] = "wajib diisi"
	}
	if in.Price < 0 {
		errs["price"] = "tidak boleh negatif"
	}
	if in.Stock < 0 {
		errs["stock"] = "tidak boleh negatif"
	}
	if !category.Valid(in.Category) {
		errs["category"] = "kategori tidak dikenal"
	}
	if in.Status != 0 && in.Status != 1 {
		errs["status"] = "harus 0 atau 1"
	}
	if in.ImageData != "" {
		raw, err := base64.StdEncoding.DecodeString(in.ImageData)
		switch {
		case err != nil:
			errs["imageData"] = "bukan base64 yang valid"
		case len(raw) > maxImageBytes:
			errs["imageData"] = "ukuran gambar maksimal 5MB"
		case !strings.HasPrefix(in.MimeType, "image/"):
			errs["imageData"] = "file harus berupa gambar"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// imageURL embeds an uploaded image as a data URL.
func imageURL(in envelope.ProductData) string {
	return "data:" + in.MimeType + ";base64," + in.ImageData
}
