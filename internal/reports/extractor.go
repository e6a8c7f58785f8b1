package reports

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor converts a report image into a structured Analysis using an
// external vision-capable completion provider.
type Extractor interface {
	Extract(ctx context.Context, image []byte, filename string) (*Analysis, error)
}

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// AllowedExtension reports whether the uploaded filename carries a
// supported image extension.
func AllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// AllowedExtensionList returns the supported extensions for error messages.
func AllowedExtensionList() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
}

func mimeTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// imageFormat returns the bare format name ("png", "jpeg", ...) used by
// providers that take the format separately from the bytes.
func imageFormat(filename string) string {
	return strings.TrimPrefix(mimeTypeFor(filename), "image/")
}

// dataURI encodes image bytes as a base64 data URI for providers that
// accept images by URL.
func dataURI(image []byte, filename string) string {
	encoded := base64.StdEncoding.EncodeToString(image)
	return fmt.Sprintf("data:%s;base64,%s", mimeTypeFor(filename), encoded)
}

// parseAnalysis decodes the provider's JSON response into an Analysis,
// tolerating markdown code fences around the payload.
func parseAnalysis(raw string) (*Analysis, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("reports: malformed provider response: %w", err)
	}
	if len(analysis.Levels) == 0 {
		return nil, fmt.Errorf("reports: provider response contains no test parameters")
	}
	analysis.Normalize()
	return &analysis, nil
}
