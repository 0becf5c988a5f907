// This file adapts shapestone-shape-xml's reflect-based struct-tag
// convention (tags.go) into an encoder that targets an Element tree
// instead of an ast.SchemaNode: Marshal builds an *Element via reflection
// and hands it to Render, rather than hand-assembling a map-shaped AST.
package xml

import (
	"fmt"
	"reflect"

	"github.com/shapestone/xmlrecover/internal/tree"
)

// Marshal renders v — a struct or pointer to struct — as markup, with the
// root element named rootName. Field tags follow the same `xml:"..."`
// conventions Unmarshal reads: name, attr, chardata, cdata, omitempty, and
// "-" to skip a field.
func Marshal(v interface{}, rootName string) ([]byte, error) {
	el, err := marshalValue(reflect.ValueOf(v), rootName)
	if err != nil {
		return nil, err
	}
	return Render(el), nil
}

func marshalValue(rv reflect.Value, name string) (*Element, error) {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return tree.NewElement(name), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("xml: Marshal: %s is not a struct", rv.Kind())
	}

	el := tree.NewElement(name)
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		info := getFieldInfo(field)
		if info.skip {
			continue
		}
		fv := rv.Field(i)
		if info.omitEmpty && isEmptyValue(fv) {
			continue
		}
		switch {
		case info.attr:
			el.SetAttr(info.name, formatScalar(fv))
		case info.chardata, info.cdata:
			el.AppendText(formatScalar(fv))
		default:
			if err := marshalChild(el, info.name, fv); err != nil {
				return nil, err
			}
		}
	}
	return el, nil
}

func marshalChild(parent *Element, name string, fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < fv.Len(); i++ {
			if err := marshalChild(parent, name, fv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Ptr:
		if fv.IsNil() {
			return nil
		}
		return marshalChild(parent, name, fv.Elem())
	case reflect.Struct:
		child, err := marshalValue(fv, name)
		if err != nil {
			return err
		}
		parent.AppendChild(child)
		return nil
	default:
		child := tree.NewElement(name)
		child.AppendText(formatScalar(fv))
		parent.AppendChild(child)
		return nil
	}
}

func formatScalar(v reflect.Value) string {
	return fmt.Sprintf("%v", v.Interface())
}
