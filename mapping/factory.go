package mapping

import (
	"reflect"
	"sync"
)

// Factory is the process-wide, lazily populated cache from entity to
// resolved TypeDefinition. On a miss it consults explicit mappings first,
// then builds from the registered descriptor through the configured
// conventions and overrides, and finally falls back to deriving a
// descriptor from the Go struct itself.
//
// Resolved definitions are immutable and shared; the insert discipline is
// LoadOrStore, so under concurrent first access at most one build wins and
// duplicate builds converge on equal metadata.
type Factory struct {
	conventions Conventions
	overrides   Overrides
	explicit    Mappings
	store       sync.Map // entity name -> *TypeDefinition
}

// NewFactory creates a Factory. explicit mappings (typically the output of
// Build + Merge at startup) win over lazy per-type builds; both paths
// satisfy the same resolve contract.
func NewFactory(conv Conventions, overrides Overrides, explicit Mappings) *Factory {
	return &Factory{conventions: conv, overrides: overrides, explicit: explicit}
}

// Resolve returns the definition for an entity name, building and caching
// it on first use.
func (f *Factory) Resolve(entity string) (*TypeDefinition, error) {
	if v, ok := f.store.Load(entity); ok {
		return v.(*TypeDefinition), nil
	}

	def, err := f.build(entity, nil)
	if err != nil {
		return nil, err
	}
	actual, _ := f.store.LoadOrStore(entity, def)
	return actual.(*TypeDefinition), nil
}

// ResolveType resolves by Go type, deriving a descriptor from the struct
// when the entity was never registered.
func (f *Factory) ResolveType(modelType reflect.Type) (*TypeDefinition, error) {
	for modelType.Kind() == reflect.Ptr || modelType.Kind() == reflect.Slice {
		modelType = modelType.Elem()
	}
	entity := modelType.Name()
	if v, ok := f.store.Load(entity); ok {
		return v.(*TypeDefinition), nil
	}

	def, err := f.build(entity, modelType)
	if err != nil {
		return nil, err
	}
	actual, _ := f.store.LoadOrStore(entity, def)
	return actual.(*TypeDefinition), nil
}

// build computes a definition without touching the cache; the cache is
// populated by the caller only after the full metadata exists.
func (f *Factory) build(entity string, modelType reflect.Type) (*TypeDefinition, error) {
	if def, ok := f.explicit[entity]; ok {
		return def, nil
	}

	desc, ok := Lookup(entity)
	if !ok {
		if modelType == nil {
			return nil, &Error{Entity: entity, Reason: "no descriptor registered"}
		}
		derived, err := DescribeStruct(modelType)
		if err != nil {
			return nil, err
		}
		desc = derived
	}

	def, err := buildType(desc, f.conventions)
	if err != nil {
		return nil, err
	}
	if ov, ok := f.overrides[entity]; ok {
		return MergeType(def, ov)
	}
	return def, nil
}
