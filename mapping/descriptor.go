package mapping

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

// Kind tags the declared value type of a field, enough to classify
// scalar vs entity-typed members without runtime introspection.
type Kind string

const (
	Bool   Kind = "bool"
	Int    Kind = "int"
	Uint   Kind = "uint"
	Float  Kind = "float"
	String Kind = "string"
	Time   Kind = "time"
	Bytes  Kind = "bytes"
	Entity Kind = "entity"
)

// Markers carries the per-field annotations consumed by the default
// convention predicates. All fields are optional; the zero value means
// "no marker attached".
type Markers struct {
	Reference  bool
	Ignore     bool
	ResultOnly bool
	Computed   bool
	Version    bool
	// Stamp encodes a version column as a timestamp instead of a counter.
	Stamp bool
	// LocalTime suppresses the default force-to-UTC handling.
	LocalTime bool

	Column     string // explicit column name
	Alias      string
	ColumnType string
	// JoinKey names the column carrying the foreign key of a reference member.
	JoinKey string
	// JoinMember names the member on the reference target supplying the
	// join column. Empty means the target's primary key.
	JoinMember string
}

// FieldDescriptor describes one member of an entity type.
type FieldDescriptor struct {
	Name string
	Kind Kind
	// Entity names the target entity type for Kind == Entity.
	Entity  string
	Markers Markers
}

// Descriptor is the declarative description of an entity type. It is the
// only shape the convention engine consumes; how a descriptor is obtained
// (hand written, Describe, DescribeStruct) is up to the caller.
type Descriptor struct {
	Name   string
	Fields []FieldDescriptor
}

var descriptors sync.Map // entity name -> Descriptor

// Register adds descriptors to the process-wide registry. Registering the
// same name twice keeps the last registration; registration is expected to
// happen once at startup.
func Register(descs ...Descriptor) {
	for _, d := range descs {
		descriptors.Store(d.Name, d)
	}
}

// Lookup returns the registered descriptor for an entity name.
func Lookup(name string) (Descriptor, bool) {
	if v, ok := descriptors.Load(name); ok {
		return v.(Descriptor), true
	}
	return Descriptor{}, false
}

// Registered returns all registered descriptors matching the filter,
// every descriptor when filter is nil.
func Registered(filter func(Descriptor) bool) []Descriptor {
	var descs []Descriptor
	descriptors.Range(func(_, v interface{}) bool {
		if d := v.(Descriptor); filter == nil || filter(d) {
			descs = append(descs, d)
		}
		return true
	})
	return descs
}

// Describe builds a descriptor for T named after T's type name.
func Describe[T any](fields ...FieldDescriptor) Descriptor {
	var model T
	return Descriptor{Name: reflect.TypeOf(model).Name(), Fields: fields}
}

var timeType = reflect.TypeOf(time.Time{})

// DescribeStruct derives a descriptor from a struct type, reading `relq`
// tags for markers. This is the startup time fallback for types never
// registered explicitly; the convention engine itself never touches
// reflection.
func DescribeStruct(modelType reflect.Type) (Descriptor, error) {
	for modelType.Kind() == reflect.Ptr || modelType.Kind() == reflect.Slice {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return Descriptor{}, &Error{Entity: modelType.String(), Reason: "unsupported data type"}
	}

	desc := Descriptor{Name: modelType.Name()}
	for i := 0; i < modelType.NumField(); i++ {
		fieldStruct := modelType.Field(i)
		if !fieldStruct.IsExported() {
			continue
		}
		fieldType := fieldStruct.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		// collections have no column representation; only []byte maps
		if fieldType.Kind() == reflect.Slice && fieldType.Elem().Kind() != reflect.Uint8 {
			continue
		}
		desc.Fields = append(desc.Fields, describeField(fieldStruct))
	}
	return desc, nil
}

func describeField(fieldStruct reflect.StructField) FieldDescriptor {
	field := FieldDescriptor{
		Name:    fieldStruct.Name,
		Markers: parseMarkers(fieldStruct.Tag.Get("relq")),
	}

	fieldType := fieldStruct.Type
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	switch fieldType.Kind() {
	case reflect.Bool:
		field.Kind = Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.Kind = Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.Kind = Uint
	case reflect.Float32, reflect.Float64:
		field.Kind = Float
	case reflect.String:
		field.Kind = String
	case reflect.Slice:
		field.Kind = Bytes
	case reflect.Struct:
		if fieldType == timeType {
			field.Kind = Time
		} else {
			field.Kind = Entity
			field.Entity = fieldType.Name()
		}
	default:
		field.Kind = String
	}
	return field
}

// parseMarkers parses a `relq:"..."` tag value, settings separated by ';',
// key:value pairs separated by ':'.
func parseMarkers(tag string) Markers {
	var m Markers
	for _, setting := range strings.Split(tag, ";") {
		key, value, _ := strings.Cut(strings.TrimSpace(setting), ":")
		switch strings.ToLower(key) {
		case "reference":
			m.Reference = true
		case "-", "ignore":
			m.Ignore = true
		case "result":
			m.ResultOnly = true
		case "computed":
			m.Computed = true
		case "version":
			m.Version = true
		case "stamp":
			m.Stamp = true
		case "localtime":
			m.LocalTime = true
		case "column":
			m.Column = value
		case "alias":
			m.Alias = value
		case "type":
			m.ColumnType = value
		case "joinkey":
			m.JoinKey = value
		case "joinmember":
			m.JoinMember = value
		}
	}
	return m
}
