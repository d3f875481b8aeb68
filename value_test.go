package restchain

import (
	"sort"
	"testing"
)

func TestValueNavigation(t *testing.T) {
	doc := []byte(`{
		"id": 42,
		"name": "Ana",
		"active": true,
		"score": 9.5,
		"tags": ["a", "b"],
		"address": {"city": "Lisbon"},
		"nothing": null
	}`)

	v, err := ParseValue(doc)
	if err != nil {
		t.Fatalf("ParseValue() returned error: %v", err)
	}

	if got := v.Get("name").String(); got != "Ana" {
		t.Errorf("Expected 'Ana', got %q", got)
	}
	if got := v.Get("id").Int(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := v.Get("score").Float(); got != 9.5 {
		t.Errorf("Expected 9.5, got %v", got)
	}
	if !v.Get("active").Bool() {
		t.Error("Expected active true")
	}
	if got := v.Get("address").Get("city").String(); got != "Lisbon" {
		t.Errorf("Expected nested 'Lisbon', got %q", got)
	}
	if got := v.Get("tags").Index(1).String(); got != "b" {
		t.Errorf("Expected tags[1] 'b', got %q", got)
	}
	if got := v.Get("tags").Len(); got != 2 {
		t.Errorf("Expected tags length 2, got %d", got)
	}
	if !v.Get("nothing").IsNull() {
		t.Error("Expected null member to report IsNull")
	}
}

func TestValueMissingMembers(t *testing.T) {
	v, err := ParseValue([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("ParseValue() returned error: %v", err)
	}

	missing := v.Get("b")
	if missing.Exists() {
		t.Error("Expected missing key not to exist")
	}
	if missing.IsNull() {
		t.Error("Expected missing key not to be null")
	}
	if got := missing.String(); got != "" {
		t.Errorf("Expected zero string for missing key, got %q", got)
	}
	if got := missing.Get("deeper").Int(); got != 0 {
		t.Errorf("Expected zero for navigation past a missing key, got %d", got)
	}

	if v.Index(0).Exists() {
		t.Error("Expected Index on an object not to exist")
	}
	arr, _ := ParseValue([]byte(`[1, 2]`))
	if arr.Index(5).Exists() {
		t.Error("Expected out-of-range Index not to exist")
	}
	if arr.Index(-1).Exists() {
		t.Error("Expected negative Index not to exist")
	}
}

func TestValueKeys(t *testing.T) {
	v, err := ParseValue([]byte(`{"b": 1, "a": 2}`))
	if err != nil {
		t.Fatalf("ParseValue() returned error: %v", err)
	}

	keys := v.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Expected keys [a b], got %v", keys)
	}

	if NewValue("scalar").Keys() != nil {
		t.Error("Expected nil keys for a scalar")
	}
}

func TestValueDecode(t *testing.T) {
	v, err := ParseValue([]byte(`{"id": 42, "name": "Ana"}`))
	if err != nil {
		t.Fatalf("ParseValue() returned error: %v", err)
	}

	var user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := v.Decode(&user); err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if user.ID != 42 || user.Name != "Ana" {
		t.Errorf("Unexpected decoded struct: %+v", user)
	}
}

func TestValueMarshalJSON(t *testing.T) {
	v, err := ParseValue([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("ParseValue() returned error: %v", err)
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() returned error: %v", err)
	}
	if string(raw) != `{"a":1}` {
		t.Errorf("Unexpected JSON: %s", raw)
	}
}

func TestParseValueRejectsInvalidJSON(t *testing.T) {
	if _, err := ParseValue([]byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
