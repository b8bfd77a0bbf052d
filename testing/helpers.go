// Package testing provides fixtures and assertions for replica.
package testing

import (
	"testing"

	"github.com/zoobzio/replica"
)

// Node is a singly linked list element used to build pointer cycles.
type Node struct {
	Value int
	Next  *Node
}

// Ring returns the head of a circular list of n nodes valued 0..n-1.
func Ring(n int) *Node {
	if n <= 0 {
		return nil
	}
	head := &Node{Value: 0}
	cur := head
	for i := 1; i < n; i++ {
		cur.Next = &Node{Value: i}
		cur = cur.Next
	}
	cur.Next = head
	return head
}

// CyclicRecord returns a record that refers to itself directly and through
// a child held in a list.
func CyclicRecord() map[string]any {
	root := map[string]any{"name": "root"}
	child := map[string]any{"name": "child", "parent": root}
	root["self"] = root
	root["children"] = []any{child}
	return root
}

// SharedRecord returns a record whose "left" and "right" keys hold the same
// nested record, along with that record.
func SharedRecord() (root, shared map[string]any) {
	shared = map[string]any{"v": 1}
	root = map[string]any{"left": shared, "right": shared}
	return root, shared
}

// Address implements replica.Cloner.
type Address struct {
	Street string
	Lines  []string
}

// Clone implements replica.Cloner[Address].
func (a Address) Clone() Address {
	return Address{Street: a.Street, Lines: append([]string(nil), a.Lines...)}
}

// Profile is a test type exercising every field mode.
type Profile struct {
	ID       string
	Emails   []string
	Address  Address
	Settings map[string]any
	Logger   *Logger `replica:"shallow"`
	Token    []byte  `replica:"-"`
}

// Logger stands in for a handle that must be shared, never copied.
type Logger struct {
	Name string
}

// NewProfile returns a fully populated Profile.
func NewProfile() Profile {
	return Profile{
		ID:       "p-1",
		Emails:   []string{"alice@example.com"},
		Address:  Address{Street: "1 Main St", Lines: []string{"Apt 2"}},
		Settings: map[string]any{"theme": "dark", "limits": map[string]any{"rps": 10}},
		Logger:   &Logger{Name: "audit"},
		Token:    []byte("secret"),
	}
}

// Layers returns a base and overlay configuration and the record expected
// from merging the overlay onto the base.
func Layers() (base, overlay, want map[string]any) {
	base = map[string]any{
		"name":    "service",
		"server":  map[string]any{"host": "localhost", "mode": "dev"},
		"plugins": []any{"auth"},
	}
	overlay = map[string]any{
		"server":  map[string]any{"mode": "prod"},
		"plugins": []any{"metrics"},
		"region":  "eu-west-1",
	}
	want = map[string]any{
		"name":    "service",
		"server":  map[string]any{"host": "localhost", "mode": "prod"},
		"plugins": []any{"auth", "metrics"},
		"region":  "eu-west-1",
	}
	return base, overlay, want
}

// RequireSameFingerprint fails tb when got and want differ in structure or content.
func RequireSameFingerprint(tb testing.TB, want, got any) {
	tb.Helper()
	if w, g := replica.Fingerprint(want), replica.Fingerprint(got); w != g {
		tb.Fatalf("fingerprint mismatch: want %s, got %s", w, g)
	}
}

// RequireIndependent fails tb when got shares its top-level storage with want.
// Both values must be maps, slices or pointers.
func RequireIndependent(tb testing.TB, want, got any) {
	tb.Helper()
	if SameReference(want, got) {
		tb.Fatalf("%T shares storage with its source", got)
	}
}
