package form

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// smallest valid PNG header, enough for content sniffing
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func validProduct() ProductForm {
	f := NewProductForm()
	f.Name = "Nasi Kotak Rendang"
	f.Price = 30000
	f.Stock = 10
	f.Category = "Nasi Kotak"
	return f
}

func TestProductForm_Validate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	f := validProduct()
	f.Name = "   "
	f.Price = -1
	f.Stock = -2
	f.Category = "Pet Food"
	f.Status = 3

	err := f.Validate()
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldErrors{
		"product_name": "wajib diisi",
		"price":        "tidak boleh negatif",
		"stock":        "tidak boleh negatif",
		"category":     "kategori tidak dikenal",
		"status":       "harus salah satu dari 0 1",
	}, fe)
}

func TestProductForm_ImageChecks(t *testing.T) {
	f := validProduct()
	f.Image = &ImageUpload{FileName: "big.png", MediaType: "image/png", Content: make([]byte, MaxImageSize+1)}
	var fe FieldErrors
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, ErrImageTooLarge.Error(), fe["imageData"])

	f.Image = &ImageUpload{FileName: "menu.pdf", MediaType: "application/pdf", Content: []byte("%PDF-1.4")}
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, ErrNotImage.Error(), fe["imageData"])

	f.Image = &ImageUpload{FileName: "x.png", Content: pngBytes}
	assert.NoError(t, f.Validate())
	assert.Equal(t, "image/png", f.Image.Type())
}

func TestProductForm_CreateRequest(t *testing.T) {
	f := validProduct()
	f.Image = &ImageUpload{FileName: "x.png", MediaType: "image/png", Content: pngBytes}

	req, err := f.CreateRequest("s@x.com")
	require.NoError(t, err)
	assert.Equal(t, envelope.ActionCreate, req.Action)
	assert.Empty(t, req.ProductID)

	var data envelope.ProductData
	require.NoError(t, json.Unmarshal(req.Data, &data))
	assert.Equal(t, "Nasi Kotak Rendang", data.ProductName)
	assert.Equal(t, 1, data.Status)
	assert.Equal(t, "image/png", data.MimeType)
	assert.Equal(t, "x.png", data.FileName)
	decoded, err := base64.StdEncoding.DecodeString(data.ImageData)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(pngBytes, decoded))
}

func TestProductForm_UpdateRequest(t *testing.T) {
	existing := record.Product{ID: "p9", Name: "Es Jeruk", Price: 7000, Stock: 3, Category: "Minuman", Status: record.StatusInactive}
	f := EditProductForm(existing)
	f.Stock = 12

	req, err := f.UpdateRequest("s@x.com", existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "p9", req.ProductID)
	assert.Equal(t, envelope.ActionUpdate, req.Action)

	var data envelope.ProductData
	require.NoError(t, json.Unmarshal(req.Data, &data))
	assert.Equal(t, 12, data.Stock)
	assert.Equal(t, 0, data.Status)
	assert.Empty(t, data.ImageData)

	_, err = f.UpdateRequest("s@x.com", "")
	assert.Error(t, err)
}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", img.FileName)
	assert.Equal(t, "image/png", img.MediaType)

	big := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxImageSize+1), 0o600))
	_, err = ReadImage(big)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestOrderForm(t *testing.T) {
	p := record.Product{ID: "p1", Owner: "s@x.com", Price: 25000, Stock: 4, Status: record.StatusActive}

	f := NewOrderForm(p)
	f.Quantity = 3
	assert.Equal(t, 75000.0, f.Total())

	req, err := f.Request("b@x.com")
	require.NoError(t, err)
	var data envelope.OrderData
	require.NoError(t, json.Unmarshal(req.Data, &data))
	assert.Equal(t, envelope.OrderData{ProductID: "p1", SellerID: "s@x.com", Quantity: 3, TotalPrice: 75000}, data)

	var fe FieldErrors
	f.Quantity = 0
	require.ErrorAs(t, f.Validate("b@x.com"), &fe)
	assert.Equal(t, "minimal 1", fe["quantity"])

	f.Quantity = 5
	require.ErrorAs(t, f.Validate("b@x.com"), &fe)
	assert.Equal(t, "melebihi stok tersedia", fe["quantity"])

	f.Quantity = 1
	require.ErrorAs(t, f.Validate("s@x.com"), &fe)
	assert.Contains(t, fe, "product_id")

	f.Product.Status = record.StatusInactive
	require.ErrorAs(t, f.Validate("b@x.com"), &fe)
	assert.Equal(t, "produk tidak tersedia", fe["product_id"])
}

func TestStatusRequest(t *testing.T) {
	req := StatusRequest("s@x.com", "o1", record.OrderRejected)
	assert.Equal(t, envelope.Request{Email: "s@x.com", Action: envelope.ActionUpdate, OrderID: "o1", OrderStatus: "rejected"}, req)
}

func TestRegistration(t *testing.T) {
	r := Registration{Email: "new@x.com", Password: "rahasia", FullName: "Budi Santoso", NomorHp: "0812", Jurusan: "Informatika", Role: "seller"}
	req, err := r.Request()
	require.NoError(t, err)
	assert.Equal(t, envelope.ActionRegister, req.Action)
	assert.Equal(t, "seller", req.Role)

	var fe FieldErrors
	_, err = Registration{Email: "nope", Password: "123", Role: "admin"}.Request()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "format email tidak valid", fe["email"])
	assert.Equal(t, "minimal 6", fe["password"])
	assert.Equal(t, "wajib diisi", fe["fullName"])
	assert.Contains(t, fe, "role")
}

func TestLoginRequest(t *testing.T) {
	req, err := LoginRequest(" a@x.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", req.Email)

	_, err = LoginRequest("", "")
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 2)
}
