package replica

import (
	"reflect"
	"regexp"
)

// cloneState holds the bookkeeping of one top-level clone.
type cloneState struct {
	seen    identityCache
	entered bool // the root value has been dispatched
	nodes   int  // reference values copied
	cycles  int  // references resolved from the identity cache
}

func newCloneState() *cloneState {
	return &cloneState{seen: make(identityCache)}
}

// remember registers dst as the copy of src before src's children are visited.
func (st *cloneState) remember(src, dst reflect.Value) {
	st.nodes++
	st.seen.add(src, dst)
}

// cloneAny clones the dynamic value held by v.
func (st *cloneState) cloneAny(v any) any {
	if v == nil {
		return nil
	}
	return st.clone(reflect.ValueOf(v)).Interface()
}

// clone dispatches v by kind and returns its copy.
// The returned value always has v's type.
func (st *cloneState) clone(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(st.clone(v.Elem()))
		return out
	}

	root := !st.entered
	st.entered = true

	kind := kindOfType(v.Type())
	if kind == KindPrimitive || kind == KindFunction || isNilRef(v) {
		return v
	}

	if cached, ok := st.seen.get(v); ok {
		st.cycles++
		return cached
	}

	if !root {
		if out, ok := st.tryCapability(v); ok {
			return out
		}
	}

	switch kind {
	case KindDate:
		return st.cloneDate(v)
	case KindPattern:
		return st.clonePattern(v)
	case KindMap, KindSet, KindRecord:
		return st.cloneMap(v)
	case KindBuffer, KindView:
		return st.cloneBlock(v)
	case KindArray:
		if v.Kind() == reflect.Array {
			return st.cloneArray(v)
		}
		return st.cloneSlice(v)
	default:
		if v.Kind() == reflect.Ptr {
			return st.clonePointer(v)
		}
		return st.cloneStruct(v)
	}
}

// cloneDate copies a time.Time. The instant, location and monotonic reading
// are all carried by value.
func (st *cloneState) cloneDate(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	out.Set(v)
	return out
}

// clonePattern copies a compiled expression, keeping its source, flags and
// match mode.
func (st *cloneState) clonePattern(v reflect.Value) reflect.Value {
	re := v.Interface().(*regexp.Regexp)
	cp := *re
	out := reflect.ValueOf(&cp)
	st.remember(v, out)
	return out
}

func (st *cloneState) cloneMap(v reflect.Value) reflect.Value {
	out := reflect.MakeMapWithSize(v.Type(), v.Len())
	st.remember(v, out)

	iter := v.MapRange()
	for iter.Next() {
		out.SetMapIndex(st.clone(iter.Key()), st.clone(iter.Value()))
	}
	return out
}

// cloneSlice registers the new slice before its elements are cloned, so a
// slice that contains itself resolves to the copy.
func (st *cloneState) cloneSlice(v reflect.Value) reflect.Value {
	out := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
	st.remember(v, out)

	for i := 0; i < v.Len(); i++ {
		out.Index(i).Set(st.clone(v.Index(i)))
	}
	return out
}

// cloneBlock copies a byte or numeric slice in bulk, including the spare
// capacity past its length.
func (st *cloneState) cloneBlock(v reflect.Value) reflect.Value {
	out := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
	reflect.Copy(out.Slice(0, v.Cap()), v.Slice(0, v.Cap()))
	st.remember(v, out)
	return out
}

func (st *cloneState) cloneArray(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	out.Set(v)
	if !needsDeepCopy(v.Type().Elem()) {
		return out
	}
	for i := 0; i < v.Len(); i++ {
		out.Index(i).Set(st.clone(v.Index(i)))
	}
	return out
}

func (st *cloneState) clonePointer(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type().Elem())
	st.remember(v, out)
	out.Elem().Set(st.clone(v.Elem()))
	return out
}

// cloneStruct copies the whole struct, then replaces exported fields according
// to the type's plan. Unexported fields keep the source's references.
func (st *cloneState) cloneStruct(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	out.Set(v)

	for _, field := range planFor(v.Type()).fields {
		dst := out.Field(field.index)
		switch field.mode {
		case ModeSkip:
			dst.Set(reflect.Zero(dst.Type()))
		default:
			dst.Set(st.clone(v.Field(field.index)))
		}
	}
	return out
}

// needsDeepCopy reports whether values of t can hold references.
func needsDeepCopy(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	switch kindOfType(t) {
	case KindPrimitive, KindFunction:
		return false
	}
	return true
}
