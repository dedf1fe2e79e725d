// Package web renders the dashboard as an HTML page
package web

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/randytsao24/experienceintel/internal/cache"
)

// StylesheetName is the file looked up in the assets directory
const StylesheetName = "style.css"

// Stylesheet reads the page stylesheet from disk, memoising the content for one TTL
type Stylesheet struct {
	path  string
	cache *cache.Cache[string]
}

// NewStylesheet serves dir/style.css, re-reading it at most once per ttl
func NewStylesheet(dir string, ttl time.Duration) *Stylesheet {
	return &Stylesheet{
		path:  filepath.Join(dir, StylesheetName),
		cache: cache.New[string](ttl),
	}
}

// Path returns the stylesheet location
func (s *Stylesheet) Path() string {
	return s.path
}

// Load returns the stylesheet text verbatim
func (s *Stylesheet) Load() (string, error) {
	css, _, err := s.cache.GetOrLoad(s.path, func() (string, error) {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return "", fmt.Errorf("reading stylesheet: %w", err)
		}
		return string(data), nil
	})
	return css, err
}

// Close releases the memo cache
func (s *Stylesheet) Close() {
	s.cache.Close()
}
