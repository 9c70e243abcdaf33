package cli

// Config stores CLI options for a single generation run.
type Config struct {
	TypeName     string
	PkgPath      string
	SchemaPath   string
	Output       string
	Format       string
	IgnoreFields []string
	MaxDepth     int
	Verbose      bool
	ShowVersion  bool
}

// OutputFilename returns destination file path for generator layer.
// Empty or "-" means stdout.
func (c *Config) OutputFilename() string {
	return c.Output
}
