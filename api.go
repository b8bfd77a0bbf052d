// Package replica provides structural deep cloning and deep merging of arbitrary Go values.
//
// The package offers two operations built on a shared reflection walker:
//
//   - Clone duplicates any value into a referentially independent copy, mirroring
//     cycles and shared references inside the source onto the copy.
//   - Merge deep-merges plain records (map[string]any) into a target record without
//     mutating or referencing the sources.
//
// # Kinds
//
// Every value is classified into one of eleven kinds before it is copied:
//
//   - primitive: nil, booleans, numbers, strings (returned unchanged)
//   - function: funcs, channels, unsafe pointers (passed through by reference)
//   - date: time.Time
//   - pattern: *regexp.Regexp
//   - map, set (map[K]struct{}), record (map[string]any)
//   - array: slices and fixed-size arrays
//   - buffer: byte slices
//   - view: slices of numbers ([]int, []float64, ...)
//   - object: structs and pointers, cloned into the same Go type
//
// # Cycles
//
// Each call to Clone owns an identity cache keyed by the address and type of every
// reference value it meets. A value is entered into the cache before its children
// are visited, so a back-reference resolves to the in-progress copy:
//
//	node := map[string]any{"name": "root"}
//	node["self"] = node
//
//	dup := replica.Clone(node)
//	// dup["self"] is dup, not node
//
// # Capabilities
//
// Types that know how to copy themselves implement Cloner[T]. Nested values with a
// Clone method are copied by that method; a panic inside it falls back to the
// reflective path. The root value's own method is skipped, so a Clone method may
// delegate to replica.Clone on its receiver:
//
//	func (s Session) Clone() Session { return replica.Clone(s) }
//
// # Field Tags
//
// Struct fields may opt out of deep copying:
//
//	type Job struct {
//	    ID     string
//	    Logger *slog.Logger `replica:"shallow"` // shared with the source
//	    cache  map[string]int                   // unexported: always shared
//	    Temp   []byte       `replica:"-"`       // zero in the clone
//	}
//
// # Merging
//
//	target := map[string]any{"a": map[string]any{"x": 1}, "arr": []any{1}, "keep": "t"}
//	source := map[string]any{"a": map[string]any{"y": 2}, "arr": []any{2, 3}, "keep": "s"}
//
//	replica.Merge(target, source)
//	// target == {"a": {"x": 1, "y": 2}, "arr": [1, 2, 3], "keep": "s"}
//
// Lists are appended, nested records are unioned key by key, everything else is
// overwritten by a clone of the incoming value.
//
// # Documents
//
// MergeDocuments decodes serialized documents with a Codec and merges them in
// order. Codec implementations are available as submodules:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package replica

import (
	"context"
	"reflect"
	"time"
)

// Record is a plain record: string keys, values of any kind.
type Record = map[string]any

// Clone returns a deep copy of v.
//
// Reference values reachable from v are duplicated, except functions and
// channels, which are shared. Cycles and shared references in v are reproduced
// in the copy. v is never mutated. Unexported struct fields are copied as-is,
// so maps, slices and pointers held in them stay shared with v.
func Clone[T any](v T) T {
	start := time.Now()
	st := newCloneState()

	in := reflect.ValueOf(&v).Elem()
	out := st.clone(in)

	var result T
	if out.IsValid() {
		reflect.ValueOf(&result).Elem().Set(out)
	}

	emitCloneComplete(context.Background(), typeName(in), time.Since(start), st.nodes, st.cycles)
	return result
}

// Merge deep-merges sources into target and returns the merged record.
//
// When target is a non-nil plain record the result is target itself, with
// every value it holds, nested records included, first replaced by a clone.
// Otherwise the result is a new empty record.
// Sources that are not plain records are skipped. Sources are never mutated and
// nothing in the result references them.
func Merge(target any, sources ...any) Record {
	start := time.Now()

	result, ok := asRecord(target)
	if ok {
		adopt(target)
	} else {
		result = Record{}
	}

	skipped := 0
	for _, src := range sources {
		rec, ok := asRecord(src)
		if !ok {
			skipped++
			continue
		}
		newMerger().merge(result, rec)
	}

	emitMergeComplete(context.Background(), typeName(reflect.ValueOf(target)), len(sources), skipped, time.Since(start))
	return result
}

// typeName describes the dynamic type of v for signals.
func typeName(v reflect.Value) string {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v.Type().String()
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
