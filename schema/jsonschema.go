package schema

import (
	"reflect"
	"strings"
)

// Schema is a minimal JSON Schema fragment, just enough to describe MCP
// tool inputs to a client.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
}

// ReflectFromType builds a Schema for t. Struct fields are named by their
// `json` tag, described by their `desc` tag, and listed as required when
// their `validate` tag carries the "required" rule. Fields tagged `json:"-"`
// and unexported fields are skipped.
func ReflectFromType(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Type: "object"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: ReflectFromType(t.Elem())}
	case reflect.Struct:
		s := &Schema{Type: "object", Properties: make(map[string]*Schema)}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" { // unexported
				continue
			}
			name := propertyName(f)
			if name == "" {
				continue
			}
			prop := ReflectFromType(f.Type)
			if desc := f.Tag.Get("desc"); desc != "" {
				prop.Description = desc
			}
			s.Properties[name] = prop
			if isRequired(f) {
				s.Required = append(s.Required, name)
			}
		}
		return s
	default:
		return &Schema{Type: "object"}
	}
}

// Reflect builds a Schema for the type of v.
func Reflect(v any) *Schema { return ReflectFromType(reflect.TypeOf(v)) }

func propertyName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func isRequired(f reflect.StructField) bool {
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}
