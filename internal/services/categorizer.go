package services

import (
	"path/filepath"
	"strings"

	"github.com/constructpm/bidflow/internal/models"
)

var declaredCategories = map[string]models.Category{
	"quote":         models.CategoryQuote,
	"quotation":     models.CategoryQuote,
	"drawing":       models.CategoryDrawing,
	"plan":          models.CategoryDrawing,
	"blueprint":     models.CategoryDrawing,
	"spec":          models.CategorySpec,
	"specification": models.CategorySpec,
}

var extensionCategories = map[string]models.Category{
	".dwg": models.CategoryDrawing,
	".dxf": models.CategoryDrawing,
}

// Categorize derives the processing category from static record metadata:
// the category declared at ingestion first, then the file extension. It
// never inspects content; content-driven classification belongs to the
// drawing pipeline behind the dispatcher. Anything unrecognized is unknown
// and routes to the pass-through handler.
func Categorize(f *models.FileRecord) models.Category {
	declared := strings.ToLower(strings.TrimSpace(f.DeclaredCategory))
	if c, ok := declaredCategories[declared]; ok {
		return c
	}

	name := f.FileName
	if name == "" {
		name = f.StorageLocation
	}
	if c, ok := extensionCategories[strings.ToLower(filepath.Ext(name))]; ok {
		return c
	}

	return models.CategoryUnknown
}
