// pkg/catalog/resolver.go
package catalog

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// resolvedField carries one source field through the resolution stages.
type resolvedField struct {
	sourceID string
	key      model.NaturalKey // portable form
	custom   bool             // owner is a custom object
	ownerKey model.ObjectKey  // portable owner identity, set when custom
}

// Resolve translates a set of source field references into their target-org
// counterparts.
//
// Stage 1 bulk-fetches field metadata from the source catalog. Stage 2
// bulk-fetches the owning custom objects referenced by those fields. Stage 3
// recombines both into portable natural keys, translating custom object ids
// into namespace-qualified names; standard owners keep their stable API name
// and skip translation entirely. The mirror lookup then runs against the
// target catalog: owning objects first, fields second, each as one
// OR-combined query.
//
// Every reference with no target counterpart, field or owning object, is
// collected before Resolve fails, so a single run reports the full gap list
// and produces no partial map.
func Resolve(ctx context.Context, refs []model.FieldReference, source, target Catalog, logger *zap.Logger) (model.IdentifierMap, error) {
	if len(refs) == 0 {
		return model.IdentifierMap{}, nil
	}

	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.String())
	}
	sort.Strings(ids) // deterministic query text and error ordering

	// Stage 1: all field metadata in one source query.
	fields, err := source.FieldsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("source field lookup: %w", err)
	}

	fieldByID := make(map[string]model.FieldMetadata, len(fields))
	for _, f := range fields {
		fieldByID[model.CanonicalID(f.ID)] = f
	}

	var missing []string
	for _, id := range ids {
		if _, ok := fieldByID[id]; !ok {
			missing = append(missing, id)
		}
	}

	// Stage 2: owning custom objects, one source query for the distinct set.
	ownerIDs := distinctCustomOwnerIDs(fields)
	objects, err := source.ObjectsByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("source object lookup: %w", err)
	}

	objectByID := make(map[string]model.ObjectMetadata, len(objects))
	for _, o := range objects {
		objectByID[model.CanonicalID(o.ID)] = o
	}

	// Stage 3: portable natural keys. Object-id translation happens here,
	// before any cross-environment comparison.
	resolved := make([]resolvedField, 0, len(fields))
	for _, id := range ids {
		f, ok := fieldByID[id]
		if !ok {
			continue
		}
		rf := resolvedField{sourceID: id}
		if model.IsCustomObjectID(f.TableEnumOrID) {
			owner, ok := objectByID[model.CanonicalID(f.TableEnumOrID)]
			if !ok {
				missing = append(missing, model.NaturalKey{
					Table:           f.TableEnumOrID,
					NamespacePrefix: f.NamespacePrefix,
					DeveloperName:   f.DeveloperName,
				}.QualifiedField())
				continue
			}
			rf.custom = true
			rf.ownerKey = model.ObjectKey{NamespacePrefix: owner.NamespacePrefix, DeveloperName: owner.DeveloperName}
			rf.key = model.NaturalKey{
				Table:           owner.QualifiedName(),
				NamespacePrefix: f.NamespacePrefix,
				DeveloperName:   f.DeveloperName,
			}
		} else {
			rf.key = model.NaturalKey{
				Table:           f.TableEnumOrID,
				NamespacePrefix: f.NamespacePrefix,
				DeveloperName:   f.DeveloperName,
			}
		}
		resolved = append(resolved, rf)
	}

	// Mirror lookup, object half: find the target-local id for every custom
	// owner so field keys can be expressed in target terms. Owner gaps join
	// the same batch as field gaps so one run reports everything.
	targetObjectID, ownerMissing, err := resolveTargetOwners(ctx, target, resolved)
	if err != nil {
		return nil, err
	}
	missing = append(missing, ownerMissing...)

	queryKeys := make([]model.NaturalKey, 0, len(resolved))
	for _, rf := range resolved {
		key := rf.key
		if rf.custom {
			id, ok := targetObjectID[qualifiedOwner(rf.ownerKey)]
			if !ok {
				continue // the owner gap itself is already recorded
			}
			key.Table = id
		}
		queryKeys = append(queryKeys, key)
	}

	// Mirror lookup, field half: one OR-combined target query for all keys.
	var targetFields []model.FieldMetadata
	if len(queryKeys) > 0 {
		targetFields, err = target.FieldsByNaturalKeys(ctx, queryKeys)
		if err != nil {
			return nil, fmt.Errorf("target field lookup: %w", err)
		}
	}

	targetByKey := make(map[model.NaturalKey]model.FieldMetadata, len(targetFields))
	for _, f := range targetFields {
		key := model.NaturalKey{
			Table:           canonicalTable(f.TableEnumOrID),
			NamespacePrefix: f.NamespacePrefix,
			DeveloperName:   f.DeveloperName,
		}
		if _, dup := targetByKey[key]; dup {
			continue // first match wins on catalog duplicates
		}
		targetByKey[key] = f
	}

	idMap := make(model.IdentifierMap, len(resolved))
	for _, rf := range resolved {
		lookup := rf.key
		if rf.custom {
			id, ok := targetObjectID[qualifiedOwner(rf.ownerKey)]
			if !ok {
				continue // already recorded as missing above
			}
			lookup.Table = id
		}
		targetField, ok := targetByKey[lookup]
		if !ok {
			missing = append(missing, rf.key.QualifiedField())
			continue
		}
		idMap[rf.sourceID] = model.CanonicalID(targetField.ID)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingReferenceError{Missing: missing}
	}

	if logger != nil {
		logger.Info("Resolved field references",
			zap.Int("references", len(ids)),
			zap.Int("customOwners", len(ownerIDs)),
			zap.Int("mapped", len(idMap)))
	}
	return idMap, nil
}

// resolveTargetOwners looks up every distinct custom owner in the target
// catalog by portable identity, returning qualified name -> target object id
// plus the qualified names with no target counterpart. An owner gap is
// reported once as the object, not once per field, so the real gap stays
// visible.
func resolveTargetOwners(ctx context.Context, target Catalog, resolved []resolvedField) (map[string]string, []string, error) {
	seen := make(map[model.ObjectKey]struct{})
	keys := make([]model.ObjectKey, 0)
	for _, rf := range resolved {
		if !rf.custom {
			continue
		}
		if _, ok := seen[rf.ownerKey]; ok {
			continue
		}
		seen[rf.ownerKey] = struct{}{}
		keys = append(keys, rf.ownerKey)
	}
	if len(keys) == 0 {
		return map[string]string{}, nil, nil
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].NamespacePrefix != keys[j].NamespacePrefix {
			return keys[i].NamespacePrefix < keys[j].NamespacePrefix
		}
		return keys[i].DeveloperName < keys[j].DeveloperName
	})

	objects, err := target.ObjectsByNames(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("target object lookup: %w", err)
	}

	byName := make(map[string]string, len(objects))
	for _, o := range objects {
		if _, dup := byName[o.QualifiedName()]; dup {
			continue
		}
		byName[o.QualifiedName()] = model.CanonicalID(o.ID)
	}

	var missing []string
	for _, k := range keys {
		if _, ok := byName[qualifiedOwner(k)]; !ok {
			missing = append(missing, qualifiedOwner(k))
		}
	}
	return byName, missing, nil
}

// distinctCustomOwnerIDs collects the unique custom-object ids owning any of
// the fields.
func distinctCustomOwnerIDs(fields []model.FieldMetadata) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, f := range fields {
		if !model.IsCustomObjectID(f.TableEnumOrID) {
			continue
		}
		id := model.CanonicalID(f.TableEnumOrID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// canonicalTable truncates custom object ids to canonical form; standard
// object API names are not ids and pass through whole.
func canonicalTable(tableEnumOrID string) string {
	if model.IsCustomObjectID(tableEnumOrID) {
		return model.CanonicalID(tableEnumOrID)
	}
	return tableEnumOrID
}

func qualifiedOwner(k model.ObjectKey) string {
	return model.ObjectMetadata{NamespacePrefix: k.NamespacePrefix, DeveloperName: k.DeveloperName}.QualifiedName()
}
