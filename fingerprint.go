package replica

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"io"
	"math"
	"reflect"
	"regexp"
	"slices"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex-encoded BLAKE2b-256 digest of v's structure and content.
//
// The digest ignores identity: a clone has the fingerprint of its source. Cycles
// and shared references are encoded by the order in which they were first seen,
// and map entries are ordered by the digest of their keys, so the result does not
// depend on map iteration order. Functions and channels hash by pointer.
func Fingerprint(v any) string {
	f := newFingerprinter()
	f.walk(reflect.ValueOf(v))
	return hex.EncodeToString(f.h.Sum(nil))
}

// fingerprinter streams a canonical encoding of a value into a hash.
type fingerprinter struct {
	h    hash.Hash
	seen map[visit]int
}

func newFingerprinter() *fingerprinter {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only reachable with an oversized key.
		panic(err)
	}
	return &fingerprinter{h: h, seen: make(map[visit]int)}
}

func (f *fingerprinter) tag(b byte, t reflect.Type) {
	f.h.Write([]byte{b})
	if t != nil {
		f.str(t.String())
	}
}

func (f *fingerprinter) uint(u uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], u)
	f.h.Write(buf[:])
}

func (f *fingerprinter) str(s string) {
	f.uint(uint64(len(s)))
	_, _ = io.WriteString(f.h, s)
}

func (f *fingerprinter) walk(v reflect.Value) {
	if !v.IsValid() {
		f.tag('z', nil)
		return
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			f.tag('z', nil)
			return
		}
		f.walk(v.Elem())
		return
	}

	t := v.Type()
	if id, ok := visitOf(v); ok {
		if n, ok := f.seen[id]; ok {
			f.tag('^', t)
			f.uint(uint64(n))
			return
		}
		f.seen[id] = len(f.seen)
	}

	switch kindOfType(t) {
	case KindPrimitive:
		f.primitive(v)
	case KindFunction:
		f.tag('f', t)
		f.uint(uint64(v.Pointer()))
	case KindDate:
		if !v.CanInterface() {
			f.fields(v)
			return
		}
		ts := v.Interface().(time.Time)
		f.tag('d', t)
		f.uint(uint64(ts.Unix()))
		f.uint(uint64(ts.Nanosecond()))
		f.str(ts.Location().String())
	case KindPattern:
		if v.IsNil() || !v.CanInterface() {
			f.pointer(v)
			return
		}
		f.tag('r', t)
		f.str(v.Interface().(*regexp.Regexp).String())
	case KindMap, KindSet, KindRecord:
		f.entries(v)
	case KindArray, KindBuffer, KindView:
		f.tag('a', t)
		if isNilRef(v) {
			f.uint(0)
			return
		}
		f.uint(uint64(v.Len()) + 1)
		for i := 0; i < v.Len(); i++ {
			f.walk(v.Index(i))
		}
	default:
		if v.Kind() == reflect.Ptr {
			f.pointer(v)
			return
		}
		f.fields(v)
	}
}

func (f *fingerprinter) primitive(v reflect.Value) {
	f.tag('v', v.Type())
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			f.uint(1)
		} else {
			f.uint(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.uint(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f.uint(v.Uint())
	case reflect.Float32, reflect.Float64:
		f.uint(math.Float64bits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		f.uint(math.Float64bits(real(c)))
		f.uint(math.Float64bits(imag(c)))
	case reflect.String:
		f.str(v.String())
	}
}

func (f *fingerprinter) pointer(v reflect.Value) {
	f.tag('*', v.Type())
	if v.IsNil() {
		f.uint(0)
		return
	}
	f.uint(1)
	f.walk(v.Elem())
}

// fields hashes every struct field, exported or not.
func (f *fingerprinter) fields(v reflect.Value) {
	t := v.Type()
	f.tag('s', t)
	for i := 0; i < v.NumField(); i++ {
		f.str(t.Field(i).Name)
		f.walk(v.Field(i))
	}
}

type fingerprintEntry struct {
	key   []byte
	value reflect.Value
}

// entries hashes a map with its entries ordered by key digest.
func (f *fingerprinter) entries(v reflect.Value) {
	f.tag('m', v.Type())
	if v.IsNil() {
		f.uint(0)
		return
	}

	entries := make([]fingerprintEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		kf := newFingerprinter()
		kf.walk(iter.Key())
		entries = append(entries, fingerprintEntry{key: kf.h.Sum(nil), value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b fingerprintEntry) int {
		return bytes.Compare(a.key, b.key)
	})

	f.uint(uint64(len(entries)) + 1)
	for _, e := range entries {
		f.h.Write(e.key)
		f.walk(e.value)
	}
}
