package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newService(t *testing.T) (FileService, *storage.LocalStorage) {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewFileService(local), local
}

func TestUploadAdjustmentEvidence_Image(t *testing.T) {
	svc, local := newService(t)
	ctx := context.Background()

	url, err := svc.UploadAdjustmentEvidence(ctx, "emp-1", "adj-1", bytes.NewReader(pngOf(t, 64, 48)), "receipt.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/adjustments/emp-1/adj-1-"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	exists, err := local.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadAdjustmentEvidence_PDFStoredAsIs(t *testing.T) {
	svc, _ := newService(t)

	url, err := svc.UploadAdjustmentEvidence(context.Background(), "emp-1", "adj-1", strings.NewReader("%PDF-1.4"), "note.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"))
}

func TestUploadAdjustmentEvidence_Rejects(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UploadAdjustmentEvidence(ctx, "emp-1", "adj-1", strings.NewReader("MZ"), "tool.exe")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UploadAdjustmentEvidence(ctx, "emp-1", "adj-1", strings.NewReader("not an image"), "photo.jpg")
	assert.ErrorAs(t, err, &verrs)
}

func TestCompressImage_Downscales(t *testing.T) {
	out, err := compressImage(pngOf(t, 400, 200), 1<<20, 100)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}
