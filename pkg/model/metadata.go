// pkg/model/metadata.go
package model

// FieldMetadata describes one custom field record from an org's schema
// catalog. JSON tags follow the catalog's record shape.
type FieldMetadata struct {
	ID              string `json:"Id"`
	DeveloperName   string `json:"DeveloperName"`
	NamespacePrefix string `json:"NamespacePrefix"` // empty for unmanaged fields
	TableEnumOrID   string `json:"TableEnumOrId"`   // object id (custom) or API name (standard)
}

// ObjectMetadata describes one custom object definition record.
type ObjectMetadata struct {
	ID              string `json:"Id"`
	DeveloperName   string `json:"DeveloperName"`
	NamespacePrefix string `json:"NamespacePrefix"`
}

// QualifiedName returns the environment-portable Namespace__Name form of the
// object. Object ids must never be compared across environments; this is the
// identity used instead.
func (o ObjectMetadata) QualifiedName() string {
	if o.NamespacePrefix != "" {
		return o.NamespacePrefix + "__" + o.DeveloperName
	}
	return o.DeveloperName
}

// ObjectKey is the portable identity of a custom object definition.
type ObjectKey struct {
	NamespacePrefix string
	DeveloperName   string
}

// NaturalKey is the environment-portable composite identity of a field: the
// owning table, the namespace (empty for unmanaged), and the developer name.
// For custom owners Table holds the object's qualified name on the portable
// side, or the org-local object id once translated for a catalog query.
type NaturalKey struct {
	Table           string
	NamespacePrefix string
	DeveloperName   string
}

// QualifiedField renders the key as Object.Namespace__Field for error
// reporting.
func (k NaturalKey) QualifiedField() string {
	name := k.DeveloperName
	if k.NamespacePrefix != "" {
		name = k.NamespacePrefix + "__" + name
	}
	return k.Table + "." + name
}

// IdentifierMap maps source canonical field ids to their target counterparts.
// Built once per migration run and read-only thereafter.
type IdentifierMap map[string]string
