package datagrid

import (
	"errors"
	"maps"
	"reflect"
)

// ValueFormatter converts a cell value into a display value
// (a string or a number) for the Normalizer.
// It returns an error wrapping errors.ErrUnsupported
// if it does not handle the passed value.
type ValueFormatter interface {
	FormatValue(val reflect.Value) (any, error)
}

// ValueFormatterFunc implements ValueFormatter for a function.
type ValueFormatterFunc func(val reflect.Value) (any, error)

func (f ValueFormatterFunc) FormatValue(val reflect.Value) (any, error) {
	return f(val)
}

// Ensure that TypeFormatters implements ValueFormatter
var _ ValueFormatter = new(TypeFormatters)

// TypeFormatters selects a ValueFormatter by the exact type
// of a value, by interfaces the type implements or by its kind,
// in that order. A nil *TypeFormatters supports no values.
type TypeFormatters struct {
	Types          map[reflect.Type]ValueFormatter
	InterfaceTypes map[reflect.Type]ValueFormatter
	Kinds          map[reflect.Kind]ValueFormatter
}

func (f *TypeFormatters) FormatValue(val reflect.Value) (any, error) {
	if f == nil || !val.IsValid() {
		return nil, errors.ErrUnsupported
	}
	if tf, ok := f.Types[val.Type()]; ok {
		v, err := tf.FormatValue(val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return v, err
		}
	}
	for it, iff := range f.InterfaceTypes {
		if val.Type().Implements(it) {
			v, err := iff.FormatValue(val)
			if !errors.Is(err, errors.ErrUnsupported) {
				return v, err
			}
		}
	}
	if kf, ok := f.Kinds[val.Kind()]; ok {
		return kf.FormatValue(val)
	}
	return nil, errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	return &TypeFormatters{
		Types:          maps.Clone(f.Types),
		InterfaceTypes: maps.Clone(f.InterfaceTypes),
		Kinds:          maps.Clone(f.Kinds),
	}
}

func (f *TypeFormatters) SetTypeFormatter(typ reflect.Type, fmt ValueFormatter) {
	if f.Types == nil {
		f.Types = make(map[reflect.Type]ValueFormatter)
	}
	f.Types[typ] = fmt
}

// WithTypeFormatter returns a copy of f with fmt registered for typ.
// Works with a nil f.
func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetTypeFormatter(typ, fmt)
	return mod
}

func (f *TypeFormatters) SetInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) {
	if f.InterfaceTypes == nil {
		f.InterfaceTypes = make(map[reflect.Type]ValueFormatter)
	}
	f.InterfaceTypes[typ] = fmt
}

// WithInterfaceTypeFormatter returns a copy of f with fmt registered
// for all types implementing the interface typ.
func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetInterfaceTypeFormatter(typ, fmt)
	return mod
}

func (f *TypeFormatters) SetKindFormatter(kind reflect.Kind, fmt ValueFormatter) {
	if f.Kinds == nil {
		f.Kinds = make(map[reflect.Kind]ValueFormatter)
	}
	f.Kinds[kind] = fmt
}

// WithKindFormatter returns a copy of f with fmt registered for kind.
func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetKindFormatter(kind, fmt)
	return mod
}
