// pkg/catalog/catalog.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// Catalog is the read-only metadata query surface of one org. Every method
// is a single bulk lookup; implementations must not fan out into per-record
// round trips.
type Catalog interface {
	// FieldsByIDs fetches field metadata for a set of identifiers.
	FieldsByIDs(ctx context.Context, ids []string) ([]model.FieldMetadata, error)

	// ObjectsByIDs fetches custom object metadata for a set of object ids.
	ObjectsByIDs(ctx context.Context, ids []string) ([]model.ObjectMetadata, error)

	// ObjectsByNames fetches custom object metadata by portable
	// (namespace, developer name) identity.
	ObjectsByNames(ctx context.Context, keys []model.ObjectKey) ([]model.ObjectMetadata, error)

	// FieldsByNaturalKeys fetches fields matching any of the given keys.
	// Each key's Table must hold a TableEnumOrId valid in this org: a local
	// object id for custom owners, the API name for standard owners.
	FieldsByNaturalKeys(ctx context.Context, keys []model.NaturalKey) ([]model.FieldMetadata, error)
}

// MissingReferenceError reports every field or owning object that has no
// counterpart in the target schema. The whole batch is collected before the
// run halts so one pass surfaces all gaps.
type MissingReferenceError struct {
	Missing []string // fully-qualified field names, Object.Namespace__Field
}

// Error lists all missing references in one message.
func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("no target schema counterpart for %d reference(s): %s",
		len(e.Missing), strings.Join(e.Missing, ", "))
}
