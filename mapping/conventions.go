package mapping

// Conventions is the policy object steering the convention engine. Every
// decision func may be left nil, in which case the documented default
// applies. Defaults consult field markers, so a plain Conventions{} already
// honors per-field annotations.
type Conventions struct {
	// TableName, default: the entity type's own name.
	TableName func(Descriptor) string
	// PrimaryKey returns the primary key member name(s), default "ID".
	PrimaryKey func(Descriptor) []string
	// AutoIncrement, default true.
	AutoIncrement func(Descriptor) bool
	// Sequence, default none.
	Sequence func(Descriptor) string
	// ExplicitColumns, default false (unmapped members are not ignored).
	ExplicitColumns func(Descriptor) bool

	// ColumnName, default: the member's own name, or its Column marker.
	ColumnName func(FieldDescriptor) string
	// Alias, default: none, or the Alias marker.
	Alias func(FieldDescriptor) string
	// ColumnType, default: unspecified, or the ColumnType marker.
	ColumnType func(FieldDescriptor) string
	// Ignored, default: the Ignore marker.
	Ignored func(FieldDescriptor) bool
	// ResultOnly, default: the ResultOnly marker.
	ResultOnly func(FieldDescriptor) bool
	// Computed, default: the Computed marker.
	Computed func(FieldDescriptor) bool
	// Version, default: the Version marker.
	Version func(FieldDescriptor) bool
	// VersionEncoding, default numeric unless the Stamp marker is set.
	VersionEncoding func(FieldDescriptor) VersionEncoding
	// ForceUTC, default true unless the LocalTime marker is set.
	ForceUTC func(FieldDescriptor) bool

	// IsReference, default: entity-typed with the Reference marker.
	IsReference func(FieldDescriptor) bool
	// IsComplex, default: entity-typed and not a reference.
	IsComplex func(FieldDescriptor) bool
	// JoinKey names the foreign key column of a reference member,
	// default: member name + "ID", or the JoinKey marker.
	JoinKey func(FieldDescriptor) string
	// JoinMember names the member on the reference target supplying the
	// join column, default: the target's primary key (empty).
	JoinMember func(FieldDescriptor) string
	// PrefixComplex prefixes an embedded member's child column names with
	// the member's own resolved name, default false (embedding is name
	// transparent).
	PrefixComplex func(FieldDescriptor) bool
}

func (c Conventions) tableName(desc Descriptor) string {
	if c.TableName != nil {
		return c.TableName(desc)
	}
	return desc.Name
}

func (c Conventions) primaryKey(desc Descriptor) []string {
	if c.PrimaryKey != nil {
		return c.PrimaryKey(desc)
	}
	return []string{"ID"}
}

func (c Conventions) autoIncrement(desc Descriptor) bool {
	if c.AutoIncrement != nil {
		return c.AutoIncrement(desc)
	}
	return true
}

func (c Conventions) sequence(desc Descriptor) string {
	if c.Sequence != nil {
		return c.Sequence(desc)
	}
	return ""
}

func (c Conventions) explicitColumns(desc Descriptor) bool {
	if c.ExplicitColumns != nil {
		return c.ExplicitColumns(desc)
	}
	return false
}

func (c Conventions) columnName(field FieldDescriptor) string {
	if c.ColumnName != nil {
		return c.ColumnName(field)
	}
	if field.Markers.Column != "" {
		return field.Markers.Column
	}
	return field.Name
}

func (c Conventions) alias(field FieldDescriptor) string {
	if c.Alias != nil {
		return c.Alias(field)
	}
	return field.Markers.Alias
}

func (c Conventions) columnType(field FieldDescriptor) string {
	if c.ColumnType != nil {
		return c.ColumnType(field)
	}
	return field.Markers.ColumnType
}

func (c Conventions) ignored(field FieldDescriptor) bool {
	if c.Ignored != nil {
		return c.Ignored(field)
	}
	return field.Markers.Ignore
}

func (c Conventions) resultOnly(field FieldDescriptor) bool {
	if c.ResultOnly != nil {
		return c.ResultOnly(field)
	}
	return field.Markers.ResultOnly
}

func (c Conventions) computed(field FieldDescriptor) bool {
	if c.Computed != nil {
		return c.Computed(field)
	}
	return field.Markers.Computed
}

func (c Conventions) version(field FieldDescriptor) bool {
	if c.Version != nil {
		return c.Version(field)
	}
	return field.Markers.Version
}

func (c Conventions) versionEncoding(field FieldDescriptor) VersionEncoding {
	if c.VersionEncoding != nil {
		return c.VersionEncoding(field)
	}
	if field.Markers.Stamp {
		return VersionStamp
	}
	return VersionNumeric
}

func (c Conventions) forceUTC(field FieldDescriptor) bool {
	if c.ForceUTC != nil {
		return c.ForceUTC(field)
	}
	return !field.Markers.LocalTime
}

func (c Conventions) isReference(field FieldDescriptor) bool {
	if field.Kind != Entity {
		return false
	}
	if c.IsReference != nil {
		return c.IsReference(field)
	}
	return field.Markers.Reference
}

func (c Conventions) isComplex(field FieldDescriptor) bool {
	if field.Kind != Entity {
		return false
	}
	if c.IsComplex != nil {
		return c.IsComplex(field)
	}
	return !c.isReference(field)
}

func (c Conventions) joinKey(field FieldDescriptor) string {
	if c.JoinKey != nil {
		return c.JoinKey(field)
	}
	if field.Markers.JoinKey != "" {
		return field.Markers.JoinKey
	}
	return field.Name + "ID"
}

func (c Conventions) joinMember(field FieldDescriptor) string {
	if c.JoinMember != nil {
		return c.JoinMember(field)
	}
	return field.Markers.JoinMember
}

func (c Conventions) prefixComplex(field FieldDescriptor) bool {
	if c.PrefixComplex != nil {
		return c.PrefixComplex(field)
	}
	return false
}

// SnakeConventions returns Conventions that route naming decisions through
// a Namer, keeping every other default.
func SnakeConventions(namer Namer) Conventions {
	return Conventions{
		TableName: func(desc Descriptor) string {
			return namer.TableName(desc.Name)
		},
		ColumnName: func(field FieldDescriptor) string {
			if field.Markers.Column != "" {
				return field.Markers.Column
			}
			return namer.ColumnName(field.Name)
		},
		JoinKey: func(field FieldDescriptor) string {
			if field.Markers.JoinKey != "" {
				return field.Markers.JoinKey
			}
			return namer.ColumnName(field.Name + "ID")
		},
		PrimaryKey: func(Descriptor) []string {
			return []string{"ID"}
		},
	}
}
