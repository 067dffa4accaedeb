package pipeline

import (
	"reflect"
	"testing"
)

func TestLabelMapInsertionOrder(t *testing.T) {
	m := newLabelMap()
	m.set("ccc", &Source{Path: "/c.png", Ext: ".png"})
	m.set("aaa", &Source{Path: "/a.png", Ext: ".png"})
	m.set("bbb", nil)

	want := []string{"ccc", "aaa", "bbb"}
	if got := m.labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestLabelMapSetKeepsPosition(t *testing.T) {
	m := newLabelMap()
	m.set("one", &Source{Path: "/1.png", Ext: ".png"})
	m.set("two", &Source{Path: "/2.png", Ext: ".png"})

	// Re-setting an existing label replaces the value, not the position.
	m.set("one", nil)

	want := []string{"one", "two"}
	if got := m.labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if src, ok := m.get("one"); !ok || src != nil {
		t.Errorf("get(one) = (%v, %v), want (nil, true)", src, ok)
	}
}

func TestLabelMapDelete(t *testing.T) {
	m := newLabelMap()
	m.set("one", nil)
	m.set("two", nil)
	m.set("three", nil)

	m.delete("two")
	if m.len() != 2 {
		t.Errorf("len = %d, want 2", m.len())
	}
	want := []string{"one", "three"}
	if got := m.labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	// Deleting a missing label is a no-op.
	m.delete("nope")
	if m.len() != 2 {
		t.Errorf("len = %d, want 2", m.len())
	}
}
