package lstore

import (
	"fmt"
	"testing"
)

func TestEmptyStore(t *testing.T) {
	s := NewLocalStore()
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d keys", s.Len())
	}
	if got := s.GetString("missing"); got != "" {
		t.Errorf("Expected empty sentinel for missing key, got %q", got)
	}
}

func TestInsertAndGet(t *testing.T) {
	s := NewLocalStore()

	if result := s.InsertString("key1", "value1"); result != "value1" {
		t.Errorf("Expected insert to return value1, got %s", result)
	}
	if result := s.InsertString("key2", "value2"); result != "value2" {
		t.Errorf("Expected insert to return value2, got %s", result)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 keys, got %d", s.Len())
	}

	if got := s.GetString("key2"); got != "value2" {
		t.Errorf("Expected value2, got %s", got)
	}
	if got := s.GetString("key1"); got != "value1" {
		t.Errorf("Expected value1, got %s", got)
	}

	// upsert
	s.InsertString("key1", "other")
	if got := s.GetString("key1"); got != "other" {
		t.Errorf("Expected other after overwrite, got %s", got)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 keys after overwrite, got %d", s.Len())
	}
}

func TestInsertManyEntries(t *testing.T) {
	s := NewLocalStore()
	for i := 0; i < 100_000; i++ {
		key := fmt.Sprintf("key-%d", i)
		value := fmt.Sprintf("value-%d", i)
		if result := s.InsertString(key, value); result != value {
			t.Fatalf("Expected %s, got %s", value, result)
		}
	}
	for i := 0; i < 100_000; i += 997 {
		if got := s.GetString(fmt.Sprintf("key-%d", i)); got != fmt.Sprintf("value-%d", i) {
			t.Fatalf("Unexpected value for key-%d: %s", i, got)
		}
	}
}

func TestRemove(t *testing.T) {
	s := NewLocalStore()
	s.InsertString("user:1000", "value")

	if got := s.RemoveString("user:1000"); got != "value" {
		t.Errorf("Expected removed value, got %q", got)
	}
	if got := s.GetString("user:1000"); got != "" {
		t.Errorf("Expected empty sentinel after remove, got %q", got)
	}
	if got := s.RemoveString("user:1000"); got != "" {
		t.Errorf("Expected empty sentinel when removing a missing key, got %q", got)
	}
}

func TestClear(t *testing.T) {
	s := NewLocalStore()
	for i := 0; i < 1000; i++ {
		s.InsertString(fmt.Sprintf("key-%d", i), "value")
	}
	if s.Len() != 1000 {
		t.Fatalf("Expected 1000 keys, got %d", s.Len())
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store after clear, got %d keys", s.Len())
	}
	for i := 0; i < 1000; i += 100 {
		if got := s.GetString(fmt.Sprintf("key-%d", i)); got != "" {
			t.Errorf("Expected empty sentinel after clear, got %q", got)
		}
	}
}

func TestStringsIsACopy(t *testing.T) {
	s := NewLocalStore()
	s.InsertString("a", "1")

	snapshot := s.Strings()
	if len(snapshot) != 1 || snapshot["a"] != "1" {
		t.Fatalf("Unexpected snapshot: %v", snapshot)
	}

	snapshot["b"] = "2"
	if s.Len() != 1 {
		t.Errorf("Modifying the snapshot must not modify the store")
	}
}

func TestFromMap(t *testing.T) {
	values := map[string]string{"a": "1", "b": "2"}
	s := FromMap(values)
	values["c"] = "3"

	if s.Len() != 2 {
		t.Errorf("Expected 2 keys, got %d", s.Len())
	}
	if got := s.GetString("b"); got != "2" {
		t.Errorf("Expected 2, got %s", got)
	}
}

func TestInterfaceMethods(t *testing.T) {
	s := NewLocalStore()

	if v, err := s.Insert("k", "v"); err != nil || v != "v" {
		t.Errorf("Insert returned %q, %v", v, err)
	}
	if v, err := s.Get("k"); err != nil || v != "v" {
		t.Errorf("Get returned %q, %v", v, err)
	}
	if v, err := s.Remove("k"); err != nil || v != "v" {
		t.Errorf("Remove returned %q, %v", v, err)
	}
	if v, err := s.Get("k"); err != nil || v != "" {
		t.Errorf("Get after Remove returned %q, %v", v, err)
	}
}
