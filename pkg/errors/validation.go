package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateSource checks diagram source text before it is converted or stored.
// Content is not inspected beyond encoding: malformed adjacency-list lines
// are the converter's business and are silently skipped there.
//
// Validation rules:
//   - Maximum length of maxBytes (0 disables the check)
//   - Valid UTF-8
//   - No null bytes
func ValidateSource(src string, maxBytes int) error {
	if maxBytes > 0 && len(src) > maxBytes {
		return New(ErrCodeSourceTooLarge, "source too large (%d bytes, max %d)", len(src), maxBytes)
	}
	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "source is not valid UTF-8")
	}
	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidInput, "source contains null bytes")
	}
	return nil
}

// ValidateTitle validates a document title.
//
// Validation rules:
//   - Title cannot be blank
//   - Maximum length of 200 characters
//   - No control characters
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidDocument, "title cannot be empty")
	}

	const maxTitleLength = 200
	if utf8.RuneCountInString(title) > maxTitleLength {
		return New(ErrCodeInvalidDocument, "title too long (max %d characters)", maxTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "title contains invalid control characters")
		}
	}
	return nil
}

// ValidateDocumentID checks that id is a canonical UUID.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "document id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid document id: %q", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
