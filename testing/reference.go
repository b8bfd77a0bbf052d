package testing

import "reflect"

// SameReference reports whether a and b hold the same map, slice, pointer
// or function. Values of other kinds never share a reference.
func SameReference(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Func, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
