package replica

import (
	"reflect"
	"regexp"
	"time"
)

// Kind is the clone dispatch class of a value.
type Kind uint8

const (
	KindPrimitive Kind = iota // nil, bool, numbers, strings
	KindFunction              // func, chan, unsafe.Pointer
	KindDate                  // time.Time
	KindPattern               // *regexp.Regexp
	KindMap                   // map[K]V
	KindSet                   // map[K]struct{}
	KindArray                 // []T, [N]T
	KindBuffer                // []byte
	KindView                  // []int, []float64, ...
	KindRecord                // map[string]any
	KindObject                // structs and pointers
)

var kindNames = map[Kind]string{
	KindPrimitive: "primitive",
	KindFunction:  "function",
	KindDate:      "date",
	KindPattern:   "pattern",
	KindMap:       "map",
	KindSet:       "set",
	KindArray:     "array",
	KindBuffer:    "buffer",
	KindView:      "view",
	KindRecord:    "record",
	KindObject:    "object",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsValidKind returns true if k is one of the declared kinds.
func IsValidKind(k Kind) bool {
	_, ok := kindNames[k]
	return ok
}

var (
	timeType   = reflect.TypeFor[time.Time]()
	regexpType = reflect.TypeFor[*regexp.Regexp]()
	anyType    = reflect.TypeFor[any]()
	recordType = reflect.TypeFor[Record]()
)

// KindOf classifies the dynamic value held by v.
func KindOf(v any) Kind {
	if v == nil {
		return KindPrimitive
	}
	return kindOfType(reflect.TypeOf(v))
}

// IsPlainRecord reports whether v is a non-nil map with string keys and untyped values.
func IsPlainRecord(v any) bool {
	_, ok := asRecord(v)
	return ok
}

// kindOfType classifies a concrete (non-interface) type.
func kindOfType(t reflect.Type) Kind {
	switch t {
	case timeType:
		return KindDate
	case regexpType:
		return KindPattern
	}

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return KindFunction
	case reflect.Map:
		switch {
		case t.Key().Kind() == reflect.String && t.Elem() == anyType:
			return KindRecord
		case t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0:
			return KindSet
		default:
			return KindMap
		}
	case reflect.Slice:
		switch elem := t.Elem().Kind(); {
		case elem == reflect.Uint8:
			return KindBuffer
		case isNumeric(elem):
			return KindView
		default:
			return KindArray
		}
	case reflect.Array:
		return KindArray
	case reflect.Struct, reflect.Ptr:
		return KindObject
	default:
		return KindPrimitive
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// asRecord returns v as a Record when it is a non-nil plain record.
// Named record types (bson.M and friends) share their map with the result.
func asRecord(v any) (Record, bool) {
	if rec, ok := v.(Record); ok {
		return rec, rec != nil
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if kindOfType(rv.Type()) != KindRecord || rv.IsNil() {
		return nil, false
	}
	return rv.Convert(recordType).Interface().(Record), true
}

// isList reports whether v holds a slice that merges by appending.
func isList(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Slice {
		return false
	}
	k := kindOfType(t)
	return k == KindArray || k == KindView
}
