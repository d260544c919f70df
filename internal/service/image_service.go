package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"kapipost/internal/config"
	"kapipost/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaDir           = "/tmp/kapipost/media"
	DefaultImageMaxUploadMB   = 10
	AttachmentMaxSize         = 1440
	AttachmentWebPQuality     = 75
	attachmentFilenamePattern = "%s.webp"
)

// ImageService normalizes post image attachments: every accepted upload is
// re-encoded as a bounded WebP under the media directory, so the original
// bytes never reach disk or clients.
type ImageService struct {
	mediaDir           string
	maxUploadSizeBytes int64
}

type SaveImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{
		mediaDir:           mediaDir,
		maxUploadSizeBytes: int64(DefaultImageMaxUploadMB) * 1024 * 1024,
	}
}

// Save validates and stores an uploaded image, returning the relative media
// path to keep on the post.
func (s *ImageService) Save(in SaveImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, detectedType) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	resized := resizeToFit(decoded, AttachmentMaxSize, AttachmentMaxSize)
	encoded, err := encodeWebP(resized, AttachmentWebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	rel := filepath.ToSlash(filepath.Join("posts", fmt.Sprintf(attachmentFilenamePattern, uuid.NewString())))
	if err := writeBytesToFile(filepath.Join(s.mediaDir, rel), encoded); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

// Resolve maps a stored relative media path back to the file on disk.
// Paths that escape the media directory are treated as missing.
func (s *ImageService) Resolve(rel string) (string, error) {
	clean := filepath.Clean("/" + rel)
	full := filepath.Join(s.mediaDir, clean)
	if !strings.HasPrefix(full, filepath.Clean(s.mediaDir)+string(os.PathSeparator)) {
		return "", models.NewNotFoundError("Image", rel)
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", rel)
		}
		return "", models.NewInternalError(err)
	}
	return full, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
