package storage

import (
	"errors"
	"testing"

	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	return appErr.Code
}

func TestValidateMedia(t *testing.T) {
	const max = 10 << 20

	assert.NoError(t, ValidateMedia(MediaImage, "image/JPEG", 1024, max))
	assert.NoError(t, ValidateMedia(MediaFloorPlan, "application/pdf; charset=binary", 1024, max))
	assert.NoError(t, ValidateMedia(MediaBrochure, "application/pdf", max, max))

	assert.Equal(t, "INVALID_CONTENT_TYPE", codeOf(t, ValidateMedia(MediaBrochure, "image/png", 1024, max)))
	assert.Equal(t, "INVALID_CONTENT_TYPE", codeOf(t, ValidateMedia(MediaImage, "video/mp4", 1024, max)))
	assert.Equal(t, "INVALID_FILE_SIZE", codeOf(t, ValidateMedia(MediaImage, "image/png", 0, max)))
	assert.Equal(t, "FILE_TOO_LARGE", codeOf(t, ValidateMedia(MediaImage, "image/png", max+1, max)))
	assert.Equal(t, "INVALID_MEDIA_KIND", codeOf(t, ValidateMedia("video", "video/mp4", 1, max)))
}

func TestParseMediaKind(t *testing.T) {
	kind, err := ParseMediaKind(" brochure ")
	require.NoError(t, err)
	assert.Equal(t, MediaBrochure, kind)

	_, err = ParseMediaKind("audio")
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("1a2b3c4d-0000-0000-0000-000000000000")

	assert.Equal(t, "listings/abc/image/front-view_1a2b3c4d.jpg",
		ObjectKey("listings/abc", MediaImage, "Front View.JPG", id))
	assert.Equal(t, "listings/abc/brochure/file_1a2b3c4d.pdf",
		ObjectKey("listings/abc", MediaBrochure, "../.pdf", id))
}
