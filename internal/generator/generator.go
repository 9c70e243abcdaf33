package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/struct2json/internal/skeleton"
)

// Generator renders a skeleton document and writes it out.
type Generator interface {
	Generate(cfg Config, doc *skeleton.Document) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter serializes a document with stable key order.
type Formatter interface {
	Format(doc *skeleton.Document) ([]byte, error)
}

// FileWriter writes rendered output.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
}

type jsonFormatter struct {
	indent string
}

type yamlFormatter struct {
	indent int
}

type fileWriter struct {
	stdout io.Writer
}

// New creates a generator.
func New(f Formatter, w FileWriter) Generator {
	return &generatorImpl{formatter: f, writer: w}
}

// NewJSONFormatter creates a pretty-printing JSON formatter.
func NewJSONFormatter(indent string) Formatter {
	return &jsonFormatter{indent: indent}
}

// NewYAMLFormatter creates a YAML formatter.
func NewYAMLFormatter(indent int) Formatter {
	return &yamlFormatter{indent: indent}
}

// FormatterFor returns the formatter registered under name ("json" or "yaml").
func FormatterFor(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return NewJSONFormatter("  "), nil
	case "yaml", "yml":
		return NewYAMLFormatter(2), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", name)
	}
}

// NewFileWriter creates a writer that writes to a file, or to stdout when
// the filename is empty or "-".
func NewFileWriter(stdout io.Writer) FileWriter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &fileWriter{stdout: stdout}
}

func (g *generatorImpl) Generate(cfg Config, doc *skeleton.Document) error {
	if doc == nil {
		return fmt.Errorf("no document")
	}

	out, err := g.formatter.Format(doc)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *jsonFormatter) Format(doc *skeleton.Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", f.indent)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (f *yamlFormatter) Format(doc *skeleton.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(f.indent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == "" || filename == "-" {
		_, err := w.stdout.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
