package ocr

import (
	"path/filepath"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// DetectFileType classifies a path by extension. Unknown is a terminal
// classification, not an error.
func DetectFileType(path string) domain.FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return domain.FileTypePDF
	}
	if _, ok := imageExtensions[ext]; ok {
		return domain.FileTypeImage
	}
	return domain.FileTypeUnknown
}
