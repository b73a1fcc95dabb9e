package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	evidenceMaxBytes     = 300 * 1024
	evidenceMaxDimension = 1600
)

var evidenceExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

type FileService interface {
	// UploadAdjustmentEvidence stores a supporting file for an adjustment
	// request and returns its public URL. Images are re-encoded as JPEG and
	// downscaled; PDFs are stored as-is.
	UploadAdjustmentEvidence(ctx context.Context, employeeID, adjustmentID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// UploadAdjustmentEvidence implements FileService.
func (s *fileServiceImpl) UploadAdjustmentEvidence(ctx context.Context, employeeID, adjustmentID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, evidenceExts) {
		return "", validator.ValidationErrors{{
			Field:   "file",
			Message: "file must be one of: jpg, jpeg, png, pdf",
		}}
	}

	content := file
	contentType := "application/pdf"
	if ext != ".pdf" {
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}

		compressed, err := compressImage(buffer, evidenceMaxBytes, evidenceMaxDimension)
		if err != nil {
			return "", validator.ValidationErrors{{
				Field:   "file",
				Message: "file is not a readable image",
			}}
		}

		content = bytes.NewReader(compressed)
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	// adjustments/{employeeID}/{adjustmentID}-{unix}-{short uuid}{ext}
	newFilename := fmt.Sprintf("%s-%d-%s%s", adjustmentID, s.now().Unix(), uuid.NewString()[:8], ext)
	key, err := s.storage.Upload(ctx, content, path.Join("adjustments", employeeID, newFilename), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload adjustment evidence: %w", err)
	}

	url, err := s.storage.GetURL(ctx, key, 0)
	if err != nil {
		return "", fmt.Errorf("failed to build evidence url: %w", err)
	}

	return url, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// compressImage re-encodes an image as JPEG no larger than maxBytes when
// possible, first shrinking it so its longer side is at most maxDimension.
// Quality steps down to 50; the smallest encoding is returned if the target
// is still not met.
func compressImage(buffer []byte, maxBytes int, maxDimension int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if longer := max(width, height); longer > maxDimension {
		width = width * maxDimension / longer
		height = height * maxDimension / longer
		img = resizeImage(img, max(width, 1), max(height, 1))
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()
		if len(compressed) <= maxBytes {
			break
		}
	}

	return compressed, nil
}

// resizeImage scales src to width x height with CatmullRom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
