package regions

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vango-dev/regions/internal/errors"
)

// Schema validates region data. Parse returns the value handed to the
// outlet's Children, or an error when data is invalid.
type Schema interface {
	Parse(data any) (any, error)
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc func(data any) (any, error)

// Parse implements Schema.
func (f SchemaFunc) Parse(data any) (any, error) {
	return f(data)
}

// OpenAPI validates data against an OpenAPI schema object. Data is first
// normalised to its JSON shape (maps, []any, float64), which is also what
// Children receives.
//
//	var headerSchema = regions.OpenAPI(openapi3.NewObjectSchema().
//	    WithProperty("title", openapi3.NewStringSchema()).
//	    WithRequired([]string{"title"}))
func OpenAPI(schema *openapi3.Schema) Schema {
	return SchemaFunc(func(data any) (any, error) {
		doc, err := jsonShape(data)
		if err != nil {
			return nil, err
		}
		if err := schema.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// Cty validates data against a cty type: object attributes must match
// exactly, primitive values must convert, and attributes that are not
// optional must be present and non-null at every depth. Children receives the converted
// value in JSON shape.
//
//	var headerSchema = regions.Cty(cty.Object(map[string]cty.Type{
//	    "title": cty.String,
//	}))
func Cty(ty cty.Type) Schema {
	return SchemaFunc(func(data any) (any, error) {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, errors.New("R202").Wrap(err)
		}
		val, err := ctyjson.Unmarshal(raw, ty)
		if err != nil {
			return nil, err
		}
		if err := requireAttrs(val, ty, nil); err != nil {
			return nil, err
		}
		out, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, err
		}
		var doc any
		if err := json.Unmarshal(out, &doc); err != nil {
			return nil, errors.New("R202").Wrap(err)
		}
		return doc, nil
	})
}

// requireAttrs reports the first attribute of val that ty does not mark
// optional but is null. ctyjson.Unmarshal fills absent attributes with null,
// so this is what makes them required.
func requireAttrs(val cty.Value, ty cty.Type, path cty.Path) error {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	switch {
	case ty.IsObjectType():
		for name, aty := range ty.AttributeTypes() {
			attrPath := append(path.Copy(), cty.GetAttrStep{Name: name})
			av := val.GetAttr(name)
			if av.IsNull() {
				if ty.AttributeOptional(name) {
					continue
				}
				return attrPath.NewErrorf("attribute %q is required", name)
			}
			if err := requireAttrs(av, aty, attrPath); err != nil {
				return err
			}
		}
	case ty.IsListType(), ty.IsSetType(), ty.IsMapType():
		for it := val.ElementIterator(); it.Next(); {
			key, ev := it.Element()
			if err := requireAttrs(ev, ty.ElementType(), append(path.Copy(), cty.IndexStep{Key: key})); err != nil {
				return err
			}
		}
	case ty.IsTupleType():
		elems := ty.TupleElementTypes()
		for i, it := 0, val.ElementIterator(); it.Next(); i++ {
			key, ev := it.Element()
			if err := requireAttrs(ev, elems[i], append(path.Copy(), cty.IndexStep{Key: key})); err != nil {
				return err
			}
		}
	}
	return nil
}

func jsonShape(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors.New("R202").Wrap(err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.New("R202").Wrap(err)
	}
	return doc, nil
}

// parse runs schema.Parse, turning a panic into an error.
func parse(schema Schema, data any) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			if pe, ok := p.(error); ok {
				err = pe
			} else {
				err = fmt.Errorf("%v", p)
			}
		}
	}()
	return schema.Parse(data)
}
