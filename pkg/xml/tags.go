package xml

import (
	"reflect"
	"strings"
)

// fieldInfo holds a struct field's parsed xml tag.
//
// Grounded on shapestone-shape-xml's pkg/xml/tags.go, carried over
// unchanged: the tag grammar and options (attr, cdata, chardata,
// omitempty, "-" to skip) are a generic reflect-based marshaling concern,
// independent of what AST or tree shape the rest of the package builds.
type fieldInfo struct {
	name      string
	attr      bool
	cdata     bool
	chardata  bool
	omitEmpty bool
	skip      bool
}

// parseTag parses a struct field's xml tag value.
// Format: "fieldname" or "fieldname,option1,option2".
// Options: attr, cdata, chardata, omitempty. "-" skips the field.
func parseTag(tag string) fieldInfo {
	info := fieldInfo{}

	if tag == "-" {
		info.name = "-"
		info.skip = true
		return info
	}

	parts := strings.Split(tag, ",")
	if len(parts) > 0 {
		info.name = parts[0]
	}
	for i := 1; i < len(parts); i++ {
		switch strings.TrimSpace(parts[i]) {
		case "attr":
			info.attr = true
		case "cdata":
			info.cdata = true
		case "chardata":
			info.chardata = true
		case "omitempty":
			info.omitEmpty = true
		}
	}
	return info
}

// getFieldInfo extracts field information from a struct field, falling
// back to the Go field name when the tag specifies none.
func getFieldInfo(field reflect.StructField) fieldInfo {
	info := parseTag(field.Tag.Get("xml"))
	if info.name == "" && !info.skip {
		info.name = field.Name
	}
	return info
}

// isEmptyValue reports whether v is empty according to omitempty rules.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
