// pkg/model/reference.go
package model

import "strings"

const (
	// CustomFieldPrefix is the three-letter key prefix every custom field
	// identifier on the platform starts with.
	CustomFieldPrefix = "00N"

	// CustomObjectPrefix marks a TableEnumOrId that denotes a custom object
	// definition rather than a standard object API name.
	CustomObjectPrefix = "01I"

	// CanonicalIDLength is the case-sensitive identifier length. The API
	// sometimes hands back the 18-character case-safe variant; identifiers
	// are truncated to 15 characters before any comparison.
	CanonicalIDLength = 15
)

// FieldReference is a custom-field identifier token found verbatim inside a
// layout blob. Identity is its canonical 15-character string value.
type FieldReference string

// NewFieldReference canonicalizes a raw identifier token.
func NewFieldReference(raw string) FieldReference {
	return FieldReference(CanonicalID(raw))
}

// String returns the canonical identifier text.
func (r FieldReference) String() string {
	return string(r)
}

// CanonicalID truncates an identifier to its 15-character canonical form.
// Shorter values pass through unchanged.
func CanonicalID(id string) string {
	if len(id) > CanonicalIDLength {
		return id[:CanonicalIDLength]
	}
	return id
}

// IsCustomObjectID reports whether a TableEnumOrId denotes a custom object.
// Standard objects are referenced by their stable API name instead of an id.
func IsCustomObjectID(tableEnumOrID string) bool {
	return strings.HasPrefix(tableEnumOrID, CustomObjectPrefix)
}
