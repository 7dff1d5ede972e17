package filter

import (
	"path/filepath"
	"strings"
)

// Filter decides which files the front end hands to the converter.
type Filter struct {
	AllowedExtensions []string
}

// NewFilter creates a new Filter with the given extensions, e.g. ".txt".
func NewFilter(extensions []string) *Filter {
	return &Filter{AllowedExtensions: extensions}
}

// Allowed checks if the file's extension is on the list. An empty list
// allows nothing.
func (f *Filter) Allowed(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range f.AllowedExtensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
