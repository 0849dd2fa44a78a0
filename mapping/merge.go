package mapping

import "gopkg.in/guregu/null.v4"

// TypeOverride is a possibly-partial mirror of a TypeDefinition. Every
// field is a tagged optional: an invalid null value keeps the base, a valid
// one wins, so a caller can override a single column name without
// restating the rest of the type's mapping.
type TypeOverride struct {
	Table           null.String
	PrimaryKey      []string // nil keeps base
	AutoIncrement   null.Bool
	Sequence        null.String
	ExplicitColumns null.Bool
	Columns         map[string]ColumnOverride
}

// ColumnOverride mirrors the overridable ColumnDefinition fields.
type ColumnOverride struct {
	DBName          null.String
	Alias           null.String
	ColumnType      null.String
	Ignored         null.Bool
	ResultOnly      null.Bool
	Computed        null.Bool
	Version         null.Bool
	VersionEncoding null.Int // VersionNumeric or VersionStamp
	ForceUTC        null.Bool
	ReferenceMember null.String
}

// Overrides maps entity names to their partial overrides.
type Overrides map[string]TypeOverride

// Merge combines convention output with explicit overrides, field by field,
// and returns a merged copy; the base is left untouched. Overrides for an
// entity absent from the base are skipped; an override for a column key
// absent from the base type's column map is an error.
func Merge(base Mappings, overrides Overrides) (Mappings, error) {
	merged := make(Mappings, len(base))
	for name, def := range base {
		if ov, ok := overrides[name]; ok {
			mergedDef, err := MergeType(def, ov)
			if err != nil {
				return nil, err
			}
			merged[name] = mergedDef
		} else {
			merged[name] = def
		}
	}
	return merged, nil
}

// MergeType applies one TypeOverride to a copy of def.
func MergeType(def *TypeDefinition, ov TypeOverride) (*TypeDefinition, error) {
	merged := def.clone()

	if ov.Table.Valid {
		merged.Table = ov.Table.String
	}
	if ov.PrimaryKey != nil {
		merged.PrimaryKey = append([]string(nil), ov.PrimaryKey...)
	}
	if ov.AutoIncrement.Valid {
		merged.AutoIncrement = ov.AutoIncrement.Bool
	}
	if ov.Sequence.Valid {
		merged.Sequence = ov.Sequence.String
	}
	if ov.ExplicitColumns.Valid {
		merged.ExplicitColumns = ov.ExplicitColumns.Bool
	}

	for key, colOv := range ov.Columns {
		col, ok := merged.Columns[key]
		if !ok {
			return nil, &Error{Entity: def.Name, Member: key, Reason: "override refers to an unknown column"}
		}
		mergeColumn(col, colOv)
	}
	return merged, nil
}

func mergeColumn(col *ColumnDefinition, ov ColumnOverride) {
	if ov.DBName.Valid {
		col.DBName = ov.DBName.String
	}
	if ov.Alias.Valid {
		col.Alias = ov.Alias.String
	}
	if ov.ColumnType.Valid {
		col.ColumnType = ov.ColumnType.String
	}
	if ov.Ignored.Valid {
		col.Ignored = ov.Ignored.Bool
	}
	if ov.ResultOnly.Valid {
		col.ResultOnly = ov.ResultOnly.Bool
	}
	if ov.Computed.Valid {
		col.Computed = ov.Computed.Bool
	}
	if ov.Version.Valid {
		col.Version = ov.Version.Bool
	}
	if ov.VersionEncoding.Valid {
		col.VersionEncoding = VersionEncoding(ov.VersionEncoding.Int64)
	}
	if ov.ForceUTC.Valid {
		col.ForceUTC = ov.ForceUTC.Bool
	}
	if ov.ReferenceMember.Valid {
		col.ReferenceMember = ov.ReferenceMember.String
	}
}
