package mapping

import "strings"

// Build runs the convention engine over a set of entity descriptors and
// returns one TypeDefinition per descriptor. An empty descriptor set is not
// an error, it yields empty Mappings. The walk is pure: nothing is shared
// or cached until the caller hands the result to a Factory.
func Build(descs []Descriptor, conv Conventions) (Mappings, error) {
	mappings := make(Mappings, len(descs))
	for _, desc := range descs {
		def, err := buildType(desc, conv)
		if err != nil {
			return nil, err
		}
		mappings[desc.Name] = def
	}
	return mappings, nil
}

// BuildRegistered runs the convention engine over the descriptor registry,
// filtered by an inclusion predicate (nil includes everything).
func BuildRegistered(conv Conventions, filter func(Descriptor) bool) (Mappings, error) {
	return Build(Registered(filter), conv)
}

func buildType(desc Descriptor, conv Conventions) (*TypeDefinition, error) {
	def := &TypeDefinition{
		Name:            desc.Name,
		Table:           conv.tableName(desc),
		AutoIncrement:   conv.autoIncrement(desc),
		Sequence:        conv.sequence(desc),
		ExplicitColumns: conv.explicitColumns(desc),
		Columns:         map[string]*ColumnDefinition{},
	}

	walker := typeWalker{
		conv:    conv,
		def:     def,
		visited: map[string]bool{desc.Name: true},
		seen:    map[string]Descriptor{desc.Name: desc},
	}
	if err := walker.walk(desc, nil, nil, false); err != nil {
		return nil, err
	}

	for _, member := range conv.primaryKey(desc) {
		if col := def.Columns[member]; col != nil {
			def.PrimaryKey = append(def.PrimaryKey, col.DBName)
		} else {
			def.PrimaryKey = append(def.PrimaryKey, member)
		}
	}
	return def, nil
}

type typeWalker struct {
	conv Conventions
	def  *TypeDefinition
	// visited guards against reference cycles: a referenced entity already
	// on the current chain is expanded one level, scalars only.
	visited map[string]bool
	// seen keeps the descriptor of every entity on the current chain so a
	// cycle target's scalar columns can still be emitted.
	seen map[string]Descriptor
}

// walk classifies every member of desc as reference, complex or scalar and
// emits the matching ColumnDefinitions with the accumulated member chain.
// namePrefix carries the resolved names of embedding ancestors that opted
// into prefixing; inReference suppresses prefixing entirely, reference
// targets name their columns independently.
func (w *typeWalker) walk(desc Descriptor, chain, namePrefix []string, inReference bool) error {
	for _, field := range desc.Fields {
		fieldChain := append(append([]string(nil), chain...), field.Name)

		switch {
		case w.conv.isReference(field):
			col := &ColumnDefinition{
				Chain:           fieldChain,
				Member:          field,
				DBName:          w.conv.joinKey(field),
				Alias:           w.conv.alias(field),
				Ignored:         w.conv.ignored(field),
				InReference:     inReference,
				Reference:       true,
				ReferenceEntity: field.Entity,
				ReferenceMember: w.conv.joinMember(field),
			}
			if err := w.def.add(col); err != nil {
				return err
			}
			if w.visited[field.Entity] {
				// the cycle stops here; the target's own scalars stay
				// addressable so the reference can still be filtered on
				for _, tf := range w.seen[field.Entity].Fields {
					if w.conv.isReference(tf) || w.conv.isComplex(tf) {
						continue
					}
					tfChain := append(append([]string(nil), fieldChain...), tf.Name)
					if err := w.def.add(w.scalarColumn(tf, tfChain, nil, true)); err != nil {
						return err
					}
				}
				continue
			}
			target, ok := Lookup(field.Entity)
			if !ok {
				return &Error{Entity: desc.Name, Member: field.Name, Reason: "reference target " + field.Entity + " has no descriptor"}
			}
			w.visited[field.Entity] = true
			w.seen[field.Entity] = target
			if err := w.walk(target, fieldChain, nil, true); err != nil {
				return err
			}
			delete(w.visited, field.Entity)

		case w.conv.isComplex(field):
			col := &ColumnDefinition{
				Chain:       fieldChain,
				Member:      field,
				DBName:      w.conv.columnName(field),
				Alias:       w.conv.alias(field),
				Ignored:     w.conv.ignored(field),
				InReference: inReference,
				Complex:     true,
			}
			if err := w.def.add(col); err != nil {
				return err
			}
			if w.visited[field.Entity] {
				continue
			}
			target, ok := Lookup(field.Entity)
			if !ok {
				return &Error{Entity: desc.Name, Member: field.Name, Reason: "embedded target " + field.Entity + " has no descriptor"}
			}
			childPrefix := namePrefix
			if !inReference && w.conv.prefixComplex(field) {
				childPrefix = append(append([]string(nil), namePrefix...), col.DBName)
			}
			w.visited[field.Entity] = true
			if err := w.walk(target, fieldChain, childPrefix, inReference); err != nil {
				return err
			}
			delete(w.visited, field.Entity)

		default:
			if err := w.def.add(w.scalarColumn(field, fieldChain, namePrefix, inReference)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *typeWalker) scalarColumn(field FieldDescriptor, chain, namePrefix []string, inReference bool) *ColumnDefinition {
	name := w.conv.columnName(field)
	if len(namePrefix) > 0 && !inReference {
		name = strings.Join(namePrefix, PathSeparator) + PathSeparator + name
	}
	return &ColumnDefinition{
		Chain:           chain,
		Member:          field,
		DBName:          name,
		Alias:           w.conv.alias(field),
		ColumnType:      w.conv.columnType(field),
		Ignored:         w.conv.ignored(field),
		InReference:     inReference,
		ResultOnly:      w.conv.resultOnly(field),
		Computed:        w.conv.computed(field),
		Version:         w.conv.version(field),
		VersionEncoding: w.conv.versionEncoding(field),
		ForceUTC:        field.Kind == Time && w.conv.forceUTC(field),
	}
}
