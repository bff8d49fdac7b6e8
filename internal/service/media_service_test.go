package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glimpse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaService_Save(t *testing.T) {
	media := newTestMedia(t)

	t.Run("stores a png post image", func(t *testing.T) {
		path, err := media.Save(UploadMediaInput{
			Purpose:     MediaPost,
			Filename:    "photo.png",
			ContentType: "image/png",
			Content:     testutil.TinyPNG(t, 4, 4),
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "/uploads/posts/post-"), "got %s", path)
		assert.True(t, strings.HasSuffix(path, ".png"))

		rel := strings.TrimPrefix(path, "/uploads/")
		_, statErr := os.Stat(filepath.Join(media.uploadDir, rel))
		assert.NoError(t, statErr)
	})

	t.Run("stores a jpeg profile picture", func(t *testing.T) {
		path, err := media.Save(UploadMediaInput{
			Purpose: MediaProfile,
			Content: testutil.TinyJPEG(t, 4, 4),
		})
		require.NoError(t, err)
		assert.Contains(t, path, "/uploads/profile-pictures/profile-")
		assert.True(t, strings.HasSuffix(path, ".jpg"))
	})

	t.Run("gif allowed for chat but not profile", func(t *testing.T) {
		gif := testutil.TinyGIF(t, 4, 4)

		path, err := media.Save(UploadMediaInput{Purpose: MediaChat, Content: gif})
		require.NoError(t, err)
		assert.Contains(t, path, "/uploads/chat/chat-")

		_, err = media.Save(UploadMediaInput{Purpose: MediaProfile, Content: gif})
		assert.Error(t, err)
	})

	t.Run("rejects empty upload", func(t *testing.T) {
		_, err := media.Save(UploadMediaInput{Purpose: MediaPost})
		assert.Error(t, err)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		_, err := media.Save(UploadMediaInput{
			Purpose: MediaPost,
			Content: []byte("#!/bin/sh\necho gotcha"),
		})
		assert.Error(t, err)
	})

	t.Run("rejects bytes that do not decode", func(t *testing.T) {
		// A PNG header with garbage after it passes sniffing but not decoding
		content := append([]byte("\x89PNG\r\n\x1a\n"), []byte("notapng")...)
		_, err := media.Save(UploadMediaInput{Purpose: MediaPost, Content: content})
		assert.Error(t, err)
	})

	t.Run("rejects oversize upload", func(t *testing.T) {
		small := &MediaService{uploadDir: t.TempDir(), maxUploadSizeBytes: 10}
		_, err := small.Save(UploadMediaInput{
			Purpose: MediaPost,
			Content: testutil.TinyPNG(t, 4, 4),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("rejects mismatched declared content type", func(t *testing.T) {
		_, err := media.Save(UploadMediaInput{
			Purpose:     MediaPost,
			ContentType: "image/png",
			Content:     testutil.TinyJPEG(t, 4, 4),
		})
		assert.Error(t, err)
	})
}

func TestMediaService_Remove(t *testing.T) {
	media := newTestMedia(t)

	path, err := media.Save(UploadMediaInput{
		Purpose: MediaPost,
		Content: testutil.TinyPNG(t, 4, 4),
	})
	require.NoError(t, err)

	abs := filepath.Join(media.uploadDir, strings.TrimPrefix(path, "/uploads/"))
	require.FileExists(t, abs)

	media.Remove(path)
	assert.NoFileExists(t, abs)

	// Paths outside the upload root are refused
	media.Remove("/etc/passwd")
	media.Remove("/uploads/../../../etc/passwd")
}
