package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

const (
	// Photos above this size are downscaled and re-encoded as JPEG.
	maxStoredImageBytes = 1 << 20
	maxImageSide        = 2000
)

type FileService interface {
	// UploadImage stores an image under folder with a random name and returns its storage key.
	UploadImage(ctx context.Context, folder string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// IsAllowedImage reports whether filename has a supported image extension.
func IsAllowedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *fileServiceImpl) UploadImage(ctx context.Context, folder string, file io.Reader, filename string) (string, error) {
	if !IsAllowedImage(filename) {
		return "", ErrInvalidFileType
	}
	ext := strings.ToLower(filepath.Ext(filename))

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) == 0 {
		return "", ErrEmptyFile
	}

	if len(buffer) > maxStoredImageBytes {
		shrunk, err := shrinkImage(buffer, maxImageSide)
		if err != nil {
			return "", fmt.Errorf("failed to compress image: %w", err)
		}
		buffer = shrunk
		ext = ".jpg"
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	key := path.Join(folder, uuid.New().String()+ext)
	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(buffer), key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file. Empty paths are ignored.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}

// shrinkImage re-encodes an image as JPEG, scaling it down so neither side exceeds maxSide.
func shrinkImage(buffer []byte, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxSide || height > maxSide {
		if width >= height {
			height = height * maxSide / width
			width = maxSide
		} else {
			width = width * maxSide / height
			height = maxSide
		}
		img = resizeImage(img, max(width, 1), max(height, 1))
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
