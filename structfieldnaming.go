package datagrid

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

var (
	// DefaultStructFieldNaming maps struct fields to Row keys
	// using the "json" tag, ignores "-" tagged fields
	// and uses the field name for untagged fields.
	DefaultStructFieldNaming = StructFieldNaming{
		Tag:    "json",
		Ignore: "-",
	}

	// DefaultColumnTitleNaming names the columns of struct fields
	// using the "col" tag, ignores "-" tagged fields
	// and uses SpacePascalCase for untagged fields.
	DefaultColumnTitleNaming = StructFieldNaming{
		Tag:      "col",
		Ignore:   "-",
		Untagged: SpacePascalCase,
	}
)

// StructFieldNaming defines how struct fields
// are mapped to Row keys or column names.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as name.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the name that excludes a field.
	Ignore string
	// Untagged will be called with the struct field name to
	// return a name in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) string
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// FieldName returns the name for a struct field
// and false if the field is ignored.
func (n *StructFieldNaming) FieldName(field reflect.StructField) (string, bool) {
	name := n.fieldName(field)
	if name == "" || (n != nil && n.Ignore != "" && name == n.Ignore) {
		return "", false
	}
	return name, true
}

func (n *StructFieldNaming) fieldName(field reflect.StructField) string {
	if n == nil {
		return field.Name
	}
	if n.Tag != "" {
		if tag, ok := field.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return field.Name
	}
	return n.Untagged(field.Name)
}

// Names returns the names of all not ignored exported fields of strct,
// which can be a struct, a pointer to a struct or a reflect.Type of them.
func (n *StructFieldNaming) Names(strct any) []string {
	typ, ok := strct.(reflect.Type)
	if !ok {
		typ = reflect.TypeOf(strct)
	}
	names := []string{}
	for _, field := range StructFieldTypes(typ) {
		if name, ok := n.FieldName(field); ok {
			names = append(names, name)
		}
	}
	return names
}

// SpacePascalCase inserts spaces before upper case
// characters within PascalCase like names.
// It also replaces underscore '_' characters with spaces.
// Usable for StructFieldNaming.Untagged
func SpacePascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastWasUpper := true
	lastWasSpace := true
	for _, r := range name {
		if r == '_' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasUpper = false
			lastWasSpace = true
			continue
		}
		isUpper := unicode.IsUpper(r)
		if isUpper && !lastWasUpper && !lastWasSpace {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		lastWasUpper = isUpper
		lastWasSpace = unicode.IsSpace(r)
	}
	return strings.TrimSpace(b.String())
}
