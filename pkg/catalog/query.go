// pkg/catalog/query.go
package catalog

import (
	"fmt"

	"github.com/huandu/go-sqlbuilder"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// The catalog's query language is SQL-shaped; statements are built with the
// query builder and interpolated into literal text because the endpoint takes
// the full statement as a single parameter, not placeholders plus arguments.

const (
	fieldEntity  = "CustomField"
	objectEntity = "CustomObject"
)

// fieldsByIDsQuery selects field metadata for an identifier set in one
// statement.
func fieldsByIDsQuery(ids []string) (string, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("Id", "DeveloperName", "NamespacePrefix", "TableEnumOrId")
	sb.From(fieldEntity)
	sb.Where(sb.In("Id", asInterfaces(ids)...))
	return interpolate(sb)
}

// objectsByIDsQuery selects custom object metadata for an id set.
func objectsByIDsQuery(ids []string) (string, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("Id", "DeveloperName", "NamespacePrefix")
	sb.From(objectEntity)
	sb.Where(sb.In("Id", asInterfaces(ids)...))
	return interpolate(sb)
}

// objectsByNamesQuery selects custom object metadata by portable identity,
// one OR-combined clause per key.
func objectsByNamesQuery(keys []model.ObjectKey) (string, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("Id", "DeveloperName", "NamespacePrefix")
	sb.From(objectEntity)

	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, sb.And(
			namespaceClause(sb, k.NamespacePrefix),
			sb.Equal("DeveloperName", k.DeveloperName),
		))
	}
	sb.Where(sb.Or(clauses...))
	return interpolate(sb)
}

// fieldsByNaturalKeysQuery selects fields matching any of the given keys,
// one OR-combined clause per key.
func fieldsByNaturalKeysQuery(keys []model.NaturalKey) (string, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("Id", "DeveloperName", "NamespacePrefix", "TableEnumOrId")
	sb.From(fieldEntity)

	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, sb.And(
			sb.Equal("TableEnumOrId", k.Table),
			namespaceClause(sb, k.NamespacePrefix),
			sb.Equal("DeveloperName", k.DeveloperName),
		))
	}
	sb.Where(sb.Or(clauses...))
	return interpolate(sb)
}

// namespaceClause matches the nullable namespace column: records without a
// namespace store NULL, not an empty string.
func namespaceClause(sb *sqlbuilder.SelectBuilder, prefix string) string {
	if prefix == "" {
		return sb.IsNull("NamespacePrefix")
	}
	return sb.Equal("NamespacePrefix", prefix)
}

// interpolate renders a builder into a literal statement.
func interpolate(sb *sqlbuilder.SelectBuilder) (string, error) {
	query, args := sb.Build()
	text, err := sqlbuilder.MySQL.Interpolate(query, args)
	if err != nil {
		return "", fmt.Errorf("interpolate catalog query: %w", err)
	}
	return text, nil
}

func asInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
