package replica

import (
	"context"
	"reflect"
)

// Cloner allows types to provide their own deep copy logic.
//
// A nested value whose type implements Cloner[T] for its own type is copied by
// calling Clone instead of walking its fields. If Clone panics, the value is
// copied reflectively and a fallback signal is emitted; the panic never reaches
// the caller.
//
// The value passed to replica.Clone is always walked reflectively, even when it
// implements Cloner. This lets a method delegate to the package:
//
//	func (s Session) Clone() Session { return replica.Clone(s) }
//
// For types with reference fields that must be handled by hand:
//
//	func (o Order) Clone() Order {
//	    items := make([]Item, len(o.Items))
//	    copy(items, o.Items)
//	    return Order{ID: o.ID, Items: items}
//	}
type Cloner[T any] interface {
	Clone() T
}

// hasCloneMethod reports whether t has a method Clone() t.
func hasCloneMethod(t reflect.Type) bool {
	m, ok := t.MethodByName("Clone")
	if !ok {
		return false
	}
	// Method types obtained from a reflect.Type include the receiver.
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == t
}

// tryCapability copies v with its own Clone method.
// It reports false when v has no such method or the method panicked.
func (st *cloneState) tryCapability(v reflect.Value) (out reflect.Value, ok bool) {
	plan := planFor(v.Type())
	if !plan.cloneMethod {
		return reflect.Value{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			emitCloneFallback(context.Background(), plan.typeName, newFallbackError(plan.typeName, r))
			out, ok = reflect.Value{}, false
		}
	}()

	out = v.MethodByName("Clone").Call(nil)[0]
	st.nodes++
	st.seen.add(v, out)
	return out, true
}
