package storage

import (
	"fmt"
	"strings"

	"estate_portal_backend/platform/apperr"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/avif": true,
}

var documentTypes = map[string]bool{
	"application/pdf": true,
}

// allowedTypes lists what each asset kind accepts. Floor plans may be drawn
// images or PDFs.
var allowedTypes = map[MediaKind][]map[string]bool{
	MediaImage:     {imageTypes},
	MediaFloorPlan: {imageTypes, documentTypes},
	MediaBrochure:  {documentTypes},
}

// ParseMediaKind validates a kind supplied by a client.
func ParseMediaKind(raw string) (MediaKind, error) {
	kind := MediaKind(strings.TrimSpace(raw))
	if _, ok := allowedTypes[kind]; !ok {
		return "", apperr.Validation(fmt.Sprintf("unknown media kind %q", raw)).WithCode("INVALID_MEDIA_KIND")
	}
	return kind, nil
}

// ValidateMedia checks the content type against the kind and the size
// against maxBytes.
func ValidateMedia(kind MediaKind, contentType string, sizeBytes, maxBytes int64) error {
	sets, ok := allowedTypes[kind]
	if !ok {
		return apperr.Validation(fmt.Sprintf("unknown media kind %q", kind)).WithCode("INVALID_MEDIA_KIND")
	}

	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	allowed := false
	for _, set := range sets {
		if set[normalized] {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.Validation(fmt.Sprintf("content type %q is not allowed for %s", contentType, kind)).
			WithCode("INVALID_CONTENT_TYPE")
	}

	if sizeBytes <= 0 {
		return apperr.Validation("file size must be greater than 0").WithCode("INVALID_FILE_SIZE")
	}
	if maxBytes > 0 && sizeBytes > maxBytes {
		return apperr.Validation(fmt.Sprintf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, maxBytes)).
			WithCode("FILE_TOO_LARGE")
	}
	return nil
}
