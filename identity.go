package replica

import "reflect"

// visit identifies a reference value by address, extent and type.
// Slices sharing a backing array but differing in length are distinct visits.
type visit struct {
	ptr uintptr
	len int
	cap int
	typ reflect.Type
}

// visitOf returns the identity of v, or false when v carries none.
func visitOf(v reflect.Value) (visit, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Ptr:
		if v.IsNil() {
			return visit{}, false
		}
		return visit{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		if v.IsNil() {
			return visit{}, false
		}
		return visit{ptr: v.Pointer(), len: v.Len(), cap: v.Cap(), typ: v.Type()}, true
	}
	return visit{}, false
}

// identityCache maps source references to their copies for a single call.
// Entries may point at copies that are still being filled in.
type identityCache map[visit]reflect.Value

func (c identityCache) get(src reflect.Value) (reflect.Value, bool) {
	id, ok := visitOf(src)
	if !ok {
		return reflect.Value{}, false
	}
	dst, ok := c[id]
	return dst, ok
}

func (c identityCache) add(src, dst reflect.Value) {
	if id, ok := visitOf(src); ok {
		c[id] = dst
	}
}

// isNilRef reports whether v is a nil map, slice or pointer.
func isNilRef(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
