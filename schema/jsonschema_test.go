package schema

import (
	"reflect"
	"testing"
)

func TestReflectStructUsesJSONTags(t *testing.T) {
	type req struct {
		Username string `json:"username" validate:"required,email" desc:"login name"`
		Phone    string `json:"phone,omitempty" validate:"omitempty"`
		Skipped  string `json:"-"`
		hidden   int
	}
	s := Reflect(req{})
	if s.Type != "object" {
		t.Fatalf("type = %q, want object", s.Type)
	}
	if _, ok := s.Properties["username"]; !ok {
		t.Fatalf("missing username property: %+v", s.Properties)
	}
	if _, ok := s.Properties["phone"]; !ok {
		t.Fatalf("omitempty tag should keep the base name: %+v", s.Properties)
	}
	if _, ok := s.Properties["Skipped"]; ok {
		t.Fatal("json:\"-\" field must be skipped")
	}
	if len(s.Properties) != 2 {
		t.Fatalf("unexpected properties: %+v", s.Properties)
	}
	if s.Properties["username"].Description != "login name" {
		t.Fatalf("description = %q", s.Properties["username"].Description)
	}
	if !reflect.DeepEqual(s.Required, []string{"username"}) {
		t.Fatalf("required = %v", s.Required)
	}
}

func TestReflectScalarsAndSlices(t *testing.T) {
	if got := Reflect("x").Type; got != "string" {
		t.Fatalf("string type = %q", got)
	}
	if got := Reflect(true).Type; got != "boolean" {
		t.Fatalf("bool type = %q", got)
	}
	if got := Reflect(3).Type; got != "integer" {
		t.Fatalf("int type = %q", got)
	}
	s := Reflect([]string{})
	if s.Type != "array" || s.Items == nil || s.Items.Type != "string" {
		t.Fatalf("slice schema = %+v", s)
	}
}
