package domain

import (
	"path/filepath"
	"strings"

	"domain-migrator/internal/yamldoc"
)

// IsYAMLFile reports whether path has a YAML extension.
func IsYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// IsDomain reports whether a parsed document declares at least one domain
// section.
func IsDomain(doc *yamldoc.Map) bool {
	for _, key := range AllKeys {
		if doc.Has(key) {
			return true
		}
	}

	return false
}
