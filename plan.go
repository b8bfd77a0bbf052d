package replica

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// tagName is the struct tag that selects a field's copy mode.
const tagName = "replica"

func init() {
	sentinel.Tag(tagName)
}

// FieldMode selects how a struct field is copied.
// Use these constants in struct tags: `replica:"shallow"`
type FieldMode string

const (
	// ModeDeep clones the field recursively. This is the default.
	ModeDeep FieldMode = "deep"

	// ModeShallow copies the field as-is, sharing any references with the source.
	ModeShallow FieldMode = "shallow"

	// ModeSkip leaves the field at its zero value in the copy.
	ModeSkip FieldMode = "-"
)

// validFieldModes contains all valid field modes for tag validation.
var validFieldModes = map[FieldMode]bool{
	ModeDeep:    true,
	ModeShallow: true,
	ModeSkip:    true,
}

// IsValidFieldMode returns true if the mode is a known field mode.
func IsValidFieldMode(m FieldMode) bool {
	return validFieldModes[m]
}

// typePlan is the cached clone behavior of a single type.
type typePlan struct {
	typeName    string
	cloneMethod bool        // type has Clone() returning itself
	fields      []fieldPlan // struct fields needing work after the whole-value copy
}

// fieldPlan describes how to copy one exported struct field.
type fieldPlan struct {
	index int       // reflect.Value.Field index
	name  string    // field name for diagnostics
	mode  FieldMode // ModeDeep or ModeSkip; shallow fields need no plan
}

// buildPlan creates the plan for t by scanning its struct fields.
func buildPlan(t reflect.Type) *typePlan {
	plan := &typePlan{
		typeName:    t.String(),
		cloneMethod: hasCloneMethod(t),
	}
	if t.Kind() != reflect.Struct {
		return plan
	}

	spec := scanStruct(t)
	for _, field := range spec.Fields {
		// Promoted fields are reached through their embedded struct.
		if len(field.Index) != 1 || !t.Field(field.Index[0]).IsExported() {
			continue
		}

		mode := FieldMode(field.Tags[tagName])
		if !IsValidFieldMode(mode) {
			mode = ModeDeep
		}

		switch mode {
		case ModeShallow:
			continue
		case ModeDeep:
			// Scalars were already copied with the enclosing struct.
			if field.Kind == sentinel.KindScalar && field.ReflectType.Kind() != reflect.Interface {
				continue
			}
		}

		plan.fields = append(plan.fields, fieldPlan{
			index: field.Index[0],
			name:  field.Name,
			mode:  mode,
		})
	}

	return plan
}

// scanStruct returns sentinel metadata for a struct type, scanning it directly
// when sentinel has not seen it.
func scanStruct(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok && spec.PackageName == rt.PkgPath() && coversExported(spec, rt) {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if val, ok := sf.Tag.Lookup(tagName); ok {
			fm.Tags[tagName] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// coversExported reports whether spec lists every exported top-level field of rt.
func coversExported(spec sentinel.Metadata, rt reflect.Type) bool {
	listed := make(map[int]bool, len(spec.Fields))
	for _, field := range spec.Fields {
		if len(field.Index) == 1 {
			listed[field.Index[0]] = true
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() && !listed[i] {
			return false
		}
	}
	return true
}
