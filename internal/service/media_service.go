package service

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"glimpse/internal/config"
	"glimpse/internal/middleware"
	"glimpse/internal/models"

	"github.com/google/uuid"
)

// MediaPurpose selects the storage subdirectory and allowed formats for an
// upload.
type MediaPurpose string

const (
	MediaProfile MediaPurpose = "profile"
	MediaPost    MediaPurpose = "post"
	MediaChat    MediaPurpose = "chat"
)

// UploadMediaInput carries a raw multipart file through validation.
type UploadMediaInput struct {
	Purpose     MediaPurpose
	Filename    string
	ContentType string
	Content     []byte
}

// MediaService validates image uploads and stores them on the local
// filesystem under the configured upload directory.
type MediaService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewMediaService returns a MediaService rooted at the configured upload dir.
func NewMediaService(cfg *config.Config) *MediaService {
	uploadDir := "uploads"
	var maxBytes int64 = 5 * 1024 * 1024
	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxBytes = cfg.MaxUploadSizeBytes()
		}
	}
	return &MediaService{uploadDir: uploadDir, maxUploadSizeBytes: maxBytes}
}

func subdirFor(purpose MediaPurpose) string {
	switch purpose {
	case MediaProfile:
		return "profile-pictures"
	case MediaChat:
		return "chat"
	default:
		return "posts"
	}
}

// allowedFormats returns the decoded image formats accepted for a purpose.
// Profile pictures exclude GIF; posts and chat images accept it.
func allowedFormats(purpose MediaPurpose) map[string]bool {
	formats := map[string]bool{"jpeg": true, "png": true}
	if purpose != MediaProfile {
		formats["gif"] = true
	}
	return formats
}

// Save validates the upload and writes it to disk. It returns the public URL
// path ("/uploads/<subdir>/<name>") to store on the owning record.
func (s *MediaService) Save(in UploadMediaInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detected := http.DetectContentType(in.Content)
	if !strings.HasPrefix(detected, "image/") {
		return "", models.NewValidationError("Only image uploads are allowed")
	}
	if provided := normalizeContentType(in.ContentType); provided != "" &&
		strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, detected) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	_, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !allowedFormats(in.Purpose)[strings.ToLower(format)] {
		return "", models.NewValidationError(fmt.Sprintf("Unsupported image format %q", format))
	}

	name := fmt.Sprintf("%s-%d-%s%s",
		in.Purpose,
		time.Now().UnixNano(),
		uuid.NewString()[:8],
		extForFormat(format),
	)
	subdir := subdirFor(in.Purpose)
	rel := filepath.ToSlash(filepath.Join(subdir, name))
	abs := filepath.Join(s.uploadDir, subdir, name)

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, in.Content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/" + rel, nil
}

// Remove deletes a previously stored file, given its public URL path. Removal
// is best-effort: the caller's database state has already changed, so a
// missing or locked file only logs a warning.
func (s *MediaService) Remove(urlPath string) {
	if !strings.HasPrefix(urlPath, "/uploads/") {
		return
	}
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == "" {
		return
	}
	// Refuse anything that escapes the upload root
	clean := filepath.Clean(rel)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return
	}
	abs := filepath.Join(s.uploadDir, clean)
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove media file", slog.String("path", abs), slog.String("error", err.Error()))
	}
}

func extForFormat(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
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
