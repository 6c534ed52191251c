package generate

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/regions/internal/errors"
	"github.com/vango-dev/regions/internal/templates"
)

// FieldType is the type of a region data field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
)

// FieldTypes lists the types offered by the prompt.
var FieldTypes = []FieldType{TypeString, TypeNumber, TypeBoolean, TypeArray}

// ItemTypes lists the element types an array may have.
var ItemTypes = []FieldType{TypeString, TypeNumber, TypeBoolean}

// Field is one field of a region's data.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	ItemType FieldType `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	Optional bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// ParseFields reads a field list. Two forms are accepted: a JSON array of
// field objects, or a comma-separated list such as
//
//	title, count:number?, tags:array<string>, featured:boolean
//
// where the type defaults to string, a trailing "?" marks the field
// optional, and "[]T" is shorthand for "array<T>".
func ParseFields(s string) ([]Field, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var fields []Field
		if err := json.Unmarshal([]byte(s), &fields); err != nil {
			return nil, errors.New("R304").WithDetail("fields JSON").Wrap(err)
		}
		return normalizeFields(fields)
	}

	var fields []Field
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := parseField(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return normalizeFields(fields)
}

func parseField(s string) (Field, error) {
	var f Field
	name, typ, _ := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	typ = strings.TrimSpace(typ)

	if strings.HasSuffix(name, "?") {
		f.Optional = true
		name = strings.TrimSuffix(name, "?")
	}
	if strings.HasSuffix(typ, "?") {
		f.Optional = true
		typ = strings.TrimSuffix(typ, "?")
	}
	f.Name = name

	switch {
	case typ == "":
		f.Type = TypeString
	case strings.HasPrefix(typ, "[]"):
		f.Type = TypeArray
		f.ItemType = FieldType(strings.TrimPrefix(typ, "[]"))
	case strings.HasPrefix(typ, "array<") && strings.HasSuffix(typ, ">"):
		f.Type = TypeArray
		f.ItemType = FieldType(strings.TrimSuffix(strings.TrimPrefix(typ, "array<"), ">"))
	default:
		f.Type = FieldType(typ)
	}
	return f, nil
}

type fieldsFile struct {
	Fields []Field `yaml:"fields"`
}

// LoadFieldsFile reads field definitions from YAML: either a list of fields
// or a mapping with a "fields" key.
func LoadFieldsFile(path string) ([]Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R321").WithDetail(path).Wrap(err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("R321").WithDetail(path).Wrap(err)
	}

	var fields []Field
	if len(doc.Content) > 0 && doc.Content[0].Kind == yaml.SequenceNode {
		err = doc.Decode(&fields)
	} else {
		var file fieldsFile
		err = doc.Decode(&file)
		fields = file.Fields
	}
	if err != nil {
		return nil, errors.New("R321").WithDetail(path).Wrap(err)
	}
	return normalizeFields(fields)
}

// normalizeFields fills defaults and rejects invalid definitions.
func normalizeFields(fields []Field) ([]Field, error) {
	if len(fields) == 0 {
		return nil, errors.New("R304").
			WithDetail("no fields given").
			WithSuggestion("Pass --fields \"title, subtitle?\" or answer the fields prompt")
	}

	seen := make(map[string]bool, len(fields))
	idents := make(map[string]string, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		if !validIdent.MatchString(f.Name) {
			return nil, errors.New("R304").WithDetailf("field name %q is not an identifier", f.Name)
		}
		if seen[f.Name] {
			return nil, errors.New("R304").WithDetailf("field %q is defined twice", f.Name)
		}
		seen[f.Name] = true

		ident := fieldIdent(f.Name)
		if ident == "Content" {
			return nil, errors.New("R304").WithDetailf("field %q clashes with the generated Content method", f.Name)
		}
		if other, ok := idents[ident]; ok {
			return nil, errors.New("R304").WithDetailf("fields %q and %q both become %s", other, f.Name, ident)
		}
		idents[ident] = f.Name

		if f.Type == "" {
			f.Type = TypeString
		}
		if !containsType(FieldTypes, f.Type) {
			return nil, errors.New("R304").WithDetailf("field %q has unknown type %q", f.Name, f.Type)
		}
		switch {
		case f.Type != TypeArray && f.ItemType != "":
			return nil, errors.New("R304").WithDetailf("field %q has an item type but is not an array", f.Name)
		case f.Type == TypeArray && f.ItemType == "":
			f.ItemType = TypeString
		case f.Type == TypeArray && !containsType(ItemTypes, f.ItemType):
			return nil, errors.New("R304").WithDetailf("field %q has unknown item type %q", f.Name, f.ItemType)
		}
		out = append(out, f)
	}
	return out, nil
}

func containsType(list []FieldType, t FieldType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func templateFields(fields []Field) []templates.Field {
	out := make([]templates.Field, len(fields))
	for i, f := range fields {
		out[i] = templates.Field{
			Name:     f.Name,
			Ident:    fieldIdent(f.Name),
			Type:     string(f.Type),
			ItemType: string(f.ItemType),
			Optional: f.Optional,
		}
	}
	return out
}
