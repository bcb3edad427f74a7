package datagrid

import (
	"fmt"
	"log/slog"
	"slices"
)

// Options configures a Grid.
// Use DefaultOptions as starting point,
// the zero value disables pagination and selection.
type Options struct {
	// ID of the rendered table element, required.
	ID string

	// IDField is the Row field holding the unique row identifier,
	// DefaultIDField if empty.
	IDField string

	// Pagination enables the paginator stage.
	Pagination bool

	// PageSizeOptions are the selectable page sizes,
	// DefaultPageSizeOptions if empty.
	PageSizeOptions []PageSize

	// RowSelectable enables row selection and actions.
	RowSelectable bool

	// SelectionMode decides if rows are toggled
	// by checkbox or by a click on the row.
	SelectionMode SelectionMode

	// SelectionActions are the bulk actions
	// offered for the current selection.
	SelectionActions []Action

	// Normalizer for the rows, NewNormalizer() if nil.
	Normalizer *Normalizer

	// Sorter for the rows, NewSorter() if nil.
	Sorter *Sorter

	// Logger for pipeline diagnostics, discards if nil.
	Logger *slog.Logger
}

// DefaultOptions returns Options with pagination
// and row selection enabled.
func DefaultOptions() Options {
	return Options{
		IDField:         DefaultIDField,
		Pagination:      true,
		PageSizeOptions: slices.Clone(DefaultPageSizeOptions),
		RowSelectable:   true,
		SelectionMode:   SelectByCheckbox,
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: table id is required", ErrInvalidOptions)
	}
	for _, size := range o.PageSizeOptions {
		if !size.Valid() {
			return fmt.Errorf("%w: page size option %d", ErrInvalidPageSize, int(size))
		}
	}
	switch o.SelectionMode {
	case SelectByCheckbox, SelectByRowClick:
	default:
		return fmt.Errorf("%w: selection mode %d", ErrInvalidOptions, int(o.SelectionMode))
	}
	names := make(map[string]struct{}, len(o.SelectionActions))
	for i, action := range o.SelectionActions {
		if action.Name == "" {
			return fmt.Errorf("%w: selection action %d has no name", ErrInvalidOptions, i)
		}
		if action.Fn == nil {
			return fmt.Errorf("%w: selection action %q has no function", ErrInvalidOptions, action.Name)
		}
		if _, dup := names[action.Name]; dup {
			return fmt.Errorf("%w: duplicate selection action %q", ErrInvalidOptions, action.Name)
		}
		names[action.Name] = struct{}{}
	}
	return nil
}

// EffectivePageSizeOptions returns the page size options
// the paginator works with: nil if pagination is disabled,
// DefaultPageSizeOptions if none are configured.
func (o *Options) EffectivePageSizeOptions() []PageSize {
	if !o.Pagination {
		return nil
	}
	if len(o.PageSizeOptions) == 0 {
		return DefaultPageSizeOptions
	}
	return o.PageSizeOptions
}

func (o *Options) idField() string {
	if o.IDField == "" {
		return DefaultIDField
	}
	return o.IDField
}

// Option modifies Options passed to New.
type Option func(*Options)

func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}

func WithIDField(field string) Option {
	return func(o *Options) { o.IDField = field }
}

func WithPagination(enabled bool) Option {
	return func(o *Options) { o.Pagination = enabled }
}

func WithPageSizeOptions(sizes ...PageSize) Option {
	return func(o *Options) { o.PageSizeOptions = sizes }
}

func WithRowSelectable(selectable bool) Option {
	return func(o *Options) { o.RowSelectable = selectable }
}

func WithSelectionMode(mode SelectionMode) Option {
	return func(o *Options) { o.SelectionMode = mode }
}

// WithActions appends selection actions.
func WithActions(actions ...Action) Option {
	return func(o *Options) { o.SelectionActions = append(o.SelectionActions, actions...) }
}

func WithNormalizer(n *Normalizer) Option {
	return func(o *Options) { o.Normalizer = n }
}

// WithDateParser sets a Sorter using parser
// to detect date values.
func WithDateParser(parser DateParser) Option {
	return func(o *Options) { o.Sorter = &Sorter{DateParser: parser} }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithOptions replaces all options with opts.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}
