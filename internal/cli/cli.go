package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var ignoreFieldsRaw string

	fs := pflag.NewFlagSet("struct2json", pflag.ContinueOnError)
	fs.StringVarP(&cfg.TypeName, "type", "t", "", "root struct or class name")
	fs.StringVarP(&cfg.PkgPath, "pkg", "p", "", "Go package path containing the struct")
	fs.StringVarP(&cfg.SchemaPath, "schema", "s", "", "YAML file with class descriptions")
	fs.StringVarP(&cfg.Output, "output", "o", "-", "output file name, - for stdout")
	fs.StringVarP(&cfg.Format, "format", "f", "json", "output format: json or yaml")
	fs.StringVar(&ignoreFieldsRaw, "ignore-fields", "", "comma-separated field names to leave out")
	fs.IntVar(&cfg.MaxDepth, "max-depth", 0, "maximum nesting depth, 0 for unlimited")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.TypeName) == "" {
		return nil, fmt.Errorf("--type is required")
	}
	hasPkg := strings.TrimSpace(cfg.PkgPath) != ""
	hasSchema := strings.TrimSpace(cfg.SchemaPath) != ""
	if hasPkg == hasSchema {
		return nil, fmt.Errorf("exactly one of --pkg or --schema is required")
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("--format must be json or yaml, got %q", cfg.Format)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("--max-depth must not be negative")
	}

	cfg.IgnoreFields = splitCommaList(ignoreFieldsRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
