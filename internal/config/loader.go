package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	datagrid "github.com/domonda/go-datagrid"
)

// EnvPrefix is the prefix of environment variables
// overriding config keys, like DATAGRID_PAGE_SIZE_INDEX.
const EnvPrefix = "DATAGRID_"

// FileNames are looked up in the working directory
// if no config file is passed explicitly.
var FileNames = []string{"datagrid.yaml", "datagrid.yml"}

// Defaults returns the default values of all config keys.
func Defaults() map[string]any {
	pageSizes := make([]string, len(datagrid.DefaultPageSizeOptions))
	for i, size := range datagrid.DefaultPageSizeOptions {
		pageSizes[i] = size.String()
	}
	return map[string]any{
		"id":              "datagrid",
		"id_field":        datagrid.DefaultIDField,
		"sheet":           "",
		"query":           "",
		"pagination":      true,
		"page_sizes":      pageSizes,
		"page_size_index": 0,
		"page":            1,
		"sort_column":     -1,
		"sort_order":      "",
		"filter":          "",
		"row_selectable":  true,
		"selection_mode":  datagrid.SelectByCheckbox.String(),
		"output":          OutputTable,
		"verbose":         false,
	}
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range FileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads the configuration with the precedence
// flags > env vars > config file > defaults.
// Only flags that were explicitly set override other sources,
// flag names are mapped from kebab-case to the snake_case keys.
// A relative rows path from the config file is resolved
// relative to the directory of the config file.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
		if rows := k.String("rows"); rows != "" && !filepath.IsAbs(rows) {
			resolved := filepath.Join(filepath.Dir(fileUsed), rows)
			if err := k.Set("rows", resolved); err != nil {
				return nil, err
			}
		}
	}

	// DATAGRID_PAGE_SIZE_INDEX -> page_size_index
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = fileUsed
	return &cfg, nil
}

// RegisterFlags adds a flag for every config key to flags.
// The defaults shown in the help are those of Defaults,
// flags only take effect if they are set explicitly.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Defaults()
	flags.String("rows", "", "rows file: JSON array of objects, CSV, Excel or SQLite database")
	flags.String("sheet", "", "Excel sheet to read, the first if empty")
	flags.String("query", "", "SQL query selecting the rows of a SQLite rows file")
	flags.String("id", defaults["id"].(string), "id of the table element")
	flags.String("id-field", defaults["id_field"].(string), "row field holding the unique row identifier")
	flags.Bool("pagination", defaults["pagination"].(bool), "split rows into pages")
	flags.StringSlice("page-sizes", defaults["page_sizes"].([]string), `page size options, "All" shows all rows`)
	flags.Int("page-size-index", 0, "index of the selected page size option")
	flags.Int("page", 1, "1 based page number")
	flags.Int("sort-column", -1, "index of the sorted column, -1 for unsorted")
	flags.String("sort-order", "", "ascending or descending")
	flags.String("filter", "", "search string")
	flags.Bool("row-selectable", defaults["row_selectable"].(bool), "enable row selection")
	flags.String("selection-mode", defaults["selection_mode"].(string), "checkbox or row")
	flags.StringP("output", "o", OutputTable, "output format: "+strings.Join(Outputs, ", "))
	flags.BoolP("verbose", "v", false, "enable debug logging")
}
