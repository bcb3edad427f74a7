package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .RawCells}}<th>{{$cell}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr>{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))

	// GridTemplate renders the complete grid markup
	// from a GridTemplateContext.
	GridTemplate = template.Must(template.New("grid").Parse(`<div class="datagrid">
  <div class="datagrid__header">
    <div class="datagrid__view-select">
{{- if .Pagination}}
      <select aria-label="Rows per page" aria-controls="{{.ID}}">
{{- range .PageSizeOptions}}
        <option value="{{.Index}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
      </select>
{{- end}}
    </div>
    <div class="datagrid__filter">
      <label for="{{.ID}}-filter">Search</label>
      <input id="{{.ID}}-filter" type="text" value="{{.Filter}}" aria-controls="{{.ID}}">
{{- if .Filter}}
      <button class="datagrid__filter__delete" aria-label="Clear search"></button>
{{- end}}
    </div>
  </div>
  <div class="datagrid__table-container">
    <table id="{{.ID}}" class="{{.TableClass}}">
{{- if .Caption}}
      <caption>{{.Caption}}</caption>
{{- end}}
      <thead>
        <tr role="row">
{{- if .Selectable}}
          <th><input type="checkbox" aria-label="Select all rows"{{if .AllSelected}} checked{{end}}></th>
{{- end}}
{{- range .Headers}}
          <th{{if .Sorted}} class="{{.AriaSort}} sorted"{{end}} tabindex="0" aria-controls="{{$.ID}}" aria-sort="{{.AriaSort}}" aria-label="{{.AriaLabel}}" data-column="{{.Index}}">
            <div><span class="datagrid__head-text">{{.Name}}</span><span class="datagrid__sort-icon {{.IconOrder}}"></span></div>
          </th>
{{- end}}
        </tr>
      </thead>
      <tbody>
{{- range .Rows}}
        <tr role="row" class="{{.Class}}"{{if .ID}} data-id="{{.ID}}"{{end}}>
{{- if $.Selectable}}
          <td><input type="checkbox" aria-label="Select or deselect row {{.ID}}"{{if .Selected}} checked{{end}}></td>
{{- end}}
{{- range .Cells}}
          <td>{{.}}</td>
{{- end}}
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>
{{- if .SelectionCount}}
  <div class="datagrid__actions">
{{- range .Actions}}
{{- if .Icon}}
    <button data-action="{{.Name}}"><img src="{{.Icon}}" alt="{{.Name}}"></button>
{{- else}}
    <button data-action="{{.Name}}">{{.Name}}</button>
{{- end}}
{{- end}}
    <span>{{.SelectionLabel}}</span>
  </div>
{{- end}}
{{- if .Pagination}}
  <div class="datagrid__pagination">
    <span>{{.RangeLabel}}</span>
    <div>
{{- if .Pages}}
      <button class="datagrid__pagination__button-navigation{{if not .HasPrev}} inactive{{end}}"{{if .HasPrev}} data-page="{{.PrevPage}}"{{end}}>Previous</button>
{{- range .Pages}}
      <button class="datagrid__pagination__button-page{{if .Current}} active{{end}}" data-page="{{.Number}}">{{.Number}}</button>
{{- end}}
      <button class="datagrid__pagination__button-navigation{{if not .HasNext}} inactive{{end}}"{{if .HasNext}} data-page="{{.NextPage}}"{{end}}>Next</button>
{{- end}}
    </div>
  </div>
{{- end}}
</div>
`))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	RawCells    []template.HTML
}

// GridTemplateContext is passed to the grid template.
type GridTemplateContext struct {
	TemplateContext

	ID     string
	Filter string

	Pagination      bool
	PageSizeOptions []PageSizeOptionContext

	Selectable  bool
	AllSelected bool

	Headers []HeaderContext
	Rows    []GridRowContext

	SelectionCount int
	SelectionLabel string
	Actions        []ActionContext

	RangeLabel string
	Pages      []PageContext
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

type PageSizeOptionContext struct {
	Index    int
	Label    string
	Selected bool
}

type HeaderContext struct {
	Index int
	Name  string
	// Sorted is true for the sorted column.
	Sorted bool
	// AriaSort is "none", "ascending" or "descending".
	AriaSort string
	// AriaLabel announces the order a click would sort by.
	AriaLabel string
	// IconOrder is the current order of a sorted column
	// or "ascending" as hint for unsorted columns.
	IconOrder string
}

type GridRowContext struct {
	Index    int
	ID       string
	Selected bool
	// Class is "even" or "odd", followed by " selected".
	Class string
	Cells []template.HTML
}

type ActionContext struct {
	Name string
	Icon string
}

type PageContext struct {
	Number  int
	Current bool
}
