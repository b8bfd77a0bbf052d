package replica

import "reflect"

var listType = reflect.TypeFor[[]any]()

// adopt replaces every value of a target record with a deep clone.
// The target is registered as its own copy, so back-references to it keep
// pointing at the target while nested records become maps the result owns.
func adopt(target any) {
	st := newCloneState()
	st.entered = true

	rv := reflect.ValueOf(target)
	st.seen.add(rv, rv)

	rec := rv.Convert(recordType).Interface().(Record)
	for key, value := range rec {
		rec[key] = st.cloneAny(value)
	}
}

// mergePair identifies a destination record being merged with a source record.
type mergePair struct {
	dst, src uintptr
}

// merger folds one source record into a destination.
// Values taken from the source share a single identity cache.
type merger struct {
	st      *cloneState
	merging map[mergePair]bool
}

func newMerger() *merger {
	st := newCloneState()
	st.entered = true
	return &merger{st: st, merging: make(map[mergePair]bool)}
}

func (m *merger) merge(dst, src Record) {
	pair := mergePair{
		dst: reflect.ValueOf(dst).Pointer(),
		src: reflect.ValueOf(src).Pointer(),
	}
	if m.merging[pair] {
		return
	}
	m.merging[pair] = true

	for key, incoming := range src {
		existing := dst[key]

		if isList(existing) && isList(incoming) {
			dst[key] = m.concat(existing, incoming)
			continue
		}

		if into, ok := asRecord(existing); ok {
			if from, ok := asRecord(incoming); ok {
				m.merge(into, from)
				continue
			}
		}

		dst[key] = m.st.cloneAny(incoming)
	}
}

// concat returns existing followed by incoming, every element cloned.
// The result keeps the slice type when both sides share it.
func (m *merger) concat(existing, incoming any) any {
	ev, iv := reflect.ValueOf(existing), reflect.ValueOf(incoming)

	t := ev.Type()
	if iv.Type() != t {
		t = listType
	}

	out := reflect.MakeSlice(t, 0, ev.Len()+iv.Len())
	for _, list := range []reflect.Value{ev, iv} {
		for i := 0; i < list.Len(); i++ {
			out = reflect.Append(out, m.st.clone(list.Index(i)))
		}
	}
	return out.Interface()
}
