package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	datagrid "github.com/domonda/go-datagrid"
	"github.com/domonda/go-datagrid/internal/testutil"
)

const testConfigFile = "../../testdata/datagrid.yaml"

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.FileUsed)
	assert.Equal(t, "datagrid", cfg.ID)
	assert.Equal(t, "id", cfg.IDField)
	assert.True(t, cfg.Pagination)
	assert.Equal(t, []string{"10", "25", "50", "100", "All"}, cfg.PageSizes)
	assert.Equal(t, 1, cfg.Page)
	assert.Equal(t, -1, cfg.SortColumn)
	assert.True(t, cfg.RowSelectable)
	assert.Equal(t, "checkbox", cfg.SelectionMode)
	assert.Equal(t, OutputTable, cfg.Output)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(testConfigFile, nil)
	require.NoError(t, err)
	assert.Equal(t, testConfigFile, cfg.FileUsed)
	assert.Equal(t, "employeeTable", cfg.ID)
	assert.Equal(t, filepath.Join("../../testdata", "employees.json"), cfg.Rows, "relative to config file")
	require.Len(t, cfg.Columns, 9)
	assert.Equal(t, Column{Name: "Street", Field: "address.street"}, cfg.Columns[5])
	assert.Equal(t, "id", cfg.IDField, "default kept")
	require.NoError(t, cfg.Validate())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_FindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "datagrid.yml"), []byte("id: found\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "datagrid.yml", cfg.FileUsed)
	assert.Equal(t, "found", cfg.ID)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("DATAGRID_ID", "fromEnv")
	t.Setenv("DATAGRID_FILTER", "john")
	t.Setenv("DATAGRID_PAGE_SIZE_INDEX", "2")

	cfg, err := Load(testConfigFile, newFlags(t, "--filter", "sales", "-o", "csv", "--page-sizes", "5,All"))
	require.NoError(t, err)
	assert.Equal(t, "fromEnv", cfg.ID, "env overrides file")
	assert.Equal(t, "sales", cfg.Filter, "flag overrides env")
	assert.Equal(t, 2, cfg.PageSizeIndex)
	assert.Equal(t, OutputCSV, cfg.Output)
	assert.Equal(t, []string{"5", "All"}, cfg.PageSizes, "flag overrides file")
	assert.Equal(t, "checkbox", cfg.SelectionMode, "unset flag keeps file value")
	assert.Equal(t, -1, cfg.SortColumn, "unset flag keeps default")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			ID:         "grid",
			Pagination: true,
			PageSizes:  []string{"10", "All"},
			Page:       1,
			SortColumn: -1,
			Output:     OutputHTML,
			Columns:    []Column{{Name: "Name", Field: "name"}},
		}
		return cfg
	}
	tests := []struct {
		name      string
		modify    func(*Config)
		errSubstr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "no id", modify: func(c *Config) { c.ID = "" }, errSubstr: "id is required"},
		{name: "column without field", modify: func(c *Config) { c.Columns[0].Field = "" }, errSubstr: "has no field"},
		{name: "bad page size", modify: func(c *Config) { c.PageSizes = []string{"0"} }, errSubstr: "page_sizes"},
		{name: "page size index", modify: func(c *Config) { c.PageSizeIndex = 2 }, errSubstr: "page_size_index"},
		{name: "page size index without pagination", modify: func(c *Config) { c.Pagination = false; c.PageSizeIndex = 2 }},
		{name: "page", modify: func(c *Config) { c.Page = 0 }, errSubstr: "page must be"},
		{name: "sort order", modify: func(c *Config) { c.SortOrder = "up" }, errSubstr: "sort_order"},
		{name: "sort column", modify: func(c *Config) { c.SortColumn = 1 }, errSubstr: "sort_column"},
		{name: "selection mode", modify: func(c *Config) { c.SelectionMode = "double" }, errSubstr: "selection mode"},
		{name: "output", modify: func(c *Config) { c.Output = "xml" }, errSubstr: "unknown output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Grid(t *testing.T) {
	cfg, err := Load(testConfigFile, newFlags(t, "--sort-column", "1", "--sort-order", "desc", "--page-sizes", "2,All", "--page", "2"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	spec, err := cfg.SortSpec()
	require.NoError(t, err)
	assert.Equal(t, datagrid.SortSpec{Column: 1, Order: datagrid.SortDescending}, spec)

	opts, err := cfg.GridOptions(testutil.NewTestLogger(t))
	require.NoError(t, err)
	rows := []datagrid.Row{
		{"id": 1, "firstName": "John", "lastName": "Dupont"},
		{"id": 2, "firstName": "Harry", "lastName": "Doe"},
		{"id": 3, "firstName": "John", "lastName": "Big"},
	}
	grid, err := datagrid.New(rows, cfg.GridColumns(), opts...)
	require.NoError(t, err)
	require.NoError(t, cfg.Apply(grid))

	assert.Equal(t, "employeeTable", grid.ID())
	assert.Equal(t, datagrid.PageSize(2), grid.PageSize())
	assert.Equal(t, 2, grid.Page())
	assert.Equal(t, []any{3}, datagrid.RowIDs(grid.DisplayedRows(), "id"), "Dupont, Doe, Big")

	cfg.SortColumn = 0
	cfg.SortOrder = ""
	spec, err = cfg.SortSpec()
	require.NoError(t, err)
	assert.Equal(t, datagrid.SortAscending, spec.Order)

	cfg.Columns = nil
	assert.Nil(t, cfg.GridColumns())
}
