package mapping

import (
	"fmt"
	"strings"
)

// PathSeparator joins member chains into the column keys of a TypeDefinition.
const PathSeparator = "__"

// VersionEncoding selects how an optimistic concurrency column is stored.
type VersionEncoding int

const (
	VersionNumeric VersionEncoding = iota
	VersionStamp
)

// Error is raised for configuration level failures: overrides referring to
// unknown columns, navigation to members that are not references, missing
// descriptors. It is always surfaced at build time, before any SQL is sent.
type Error struct {
	Entity string
	Member string
	Reason string
}

func (e *Error) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("mapping: %s.%s: %s", e.Entity, e.Member, e.Reason)
	}
	return fmt.Sprintf("mapping: %s: %s", e.Entity, e.Reason)
}

// ColumnDefinition maps one scalar producing member path to a column.
// Exactly one of the plain scalar, Complex or Reference classifications
// applies to a column.
type ColumnDefinition struct {
	// Chain is the member access chain from the root entity, never empty.
	Chain  []string
	Member FieldDescriptor

	DBName     string
	Alias      string
	ColumnType string

	Ignored         bool
	ResultOnly      bool
	Computed        bool
	Version         bool
	VersionEncoding VersionEncoding
	ForceUTC        bool

	// InReference marks a column reached through a reference member; it
	// lives on the reference target's table, not the owning table.
	InReference bool

	// Complex marks an embedded entity member, flattened without a join.
	Complex bool
	// Reference marks a joined entity member; DBName then holds the join
	// key column on the owning table.
	Reference       bool
	ReferenceEntity string
	// ReferenceMember names the member on the target supplying the join
	// column; empty means the target's primary key.
	ReferenceMember string
}

// Key returns the PathSeparator-joined lookup key of the column.
func (c *ColumnDefinition) Key() string {
	return strings.Join(c.Chain, PathSeparator)
}

func (c *ColumnDefinition) clone() *ColumnDefinition {
	cc := *c
	cc.Chain = append([]string(nil), c.Chain...)
	return &cc
}

// TypeDefinition describes how one entity type maps to a table.
type TypeDefinition struct {
	Name            string
	Table           string
	PrimaryKey      []string
	AutoIncrement   bool
	Sequence        string
	ExplicitColumns bool

	// Columns is keyed by the PathSeparator-joined member chain;
	// ColumnOrder preserves declaration order.
	Columns     map[string]*ColumnDefinition
	ColumnOrder []string
}

func (def *TypeDefinition) add(col *ColumnDefinition) error {
	key := col.Key()
	if _, ok := def.Columns[key]; ok {
		return &Error{Entity: def.Name, Member: key, Reason: "duplicate column key"}
	}
	def.Columns[key] = col
	def.ColumnOrder = append(def.ColumnOrder, key)
	return nil
}

// Column looks up a column by its member path key.
func (def *TypeDefinition) Column(key string) *ColumnDefinition {
	return def.Columns[key]
}

// ScalarColumns returns the mapped plain scalar columns of this type's own
// table in declaration order, skipping ignored, complex and reference
// entries and columns living on a reference target.
func (def *TypeDefinition) ScalarColumns() []*ColumnDefinition {
	cols := make([]*ColumnDefinition, 0, len(def.ColumnOrder))
	for _, key := range def.ColumnOrder {
		if col := def.Columns[key]; !col.Ignored && !col.Complex && !col.Reference && !col.InReference {
			cols = append(cols, col)
		}
	}
	return cols
}

// PrimaryColumn returns the first primary key column name.
func (def *TypeDefinition) PrimaryColumn() string {
	if len(def.PrimaryKey) > 0 {
		return def.PrimaryKey[0]
	}
	return ""
}

func (def *TypeDefinition) clone() *TypeDefinition {
	dd := *def
	dd.PrimaryKey = append([]string(nil), def.PrimaryKey...)
	dd.ColumnOrder = append([]string(nil), def.ColumnOrder...)
	dd.Columns = make(map[string]*ColumnDefinition, len(def.Columns))
	for key, col := range def.Columns {
		dd.Columns[key] = col.clone()
	}
	return &dd
}

// Mappings maps entity names to their resolved definitions; the unit of
// configuration exchanged between convention output, explicit overrides
// and the factory cache.
type Mappings map[string]*TypeDefinition
