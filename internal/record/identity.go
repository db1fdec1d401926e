package record

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// keySeparator joins identity fields without colliding with field content
const keySeparator = "\x1f"

// NormalizeKey builds a normalized identity key from the given parts.
// Parts are whitespace-trimmed and lower-cased, so "Eng " at " ACME" and
// "eng" at "Acme" produce the same key.
func NormalizeKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return strings.Join(normalized, keySeparator)
}

// KeyIsEmpty reports whether a normalized key carries no identity at all,
// meaning every part was blank after trimming.
func KeyIsEmpty(key string) bool {
	return strings.Trim(key, keySeparator) == ""
}

// ExperienceKey returns the identity key for an experience entry
func ExperienceKey(e types.Experience) string {
	return NormalizeKey(e.Position, e.Company)
}

// EducationKey returns the identity key for an education entry
func EducationKey(e types.Education) string {
	return NormalizeKey(e.Degree, e.Institution)
}

// CertificationKey returns the identity key for a certification entry
func CertificationKey(c types.Certification) string {
	return NormalizeKey(c.Name)
}

// ProjectKey returns the identity key for a project entry
func ProjectKey(p types.Project) string {
	return NormalizeKey(p.Name)
}

// LanguageKey returns the identity key for a language entry
func LanguageKey(l types.Language) string {
	return NormalizeKey(l.Language)
}
