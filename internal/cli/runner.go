package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seitarof/struct2json/internal/classifier"
	"github.com/seitarof/struct2json/internal/generator"
	"github.com/seitarof/struct2json/internal/matcher"
	"github.com/seitarof/struct2json/internal/parser"
	"github.com/seitarof/struct2json/internal/schema"
	"github.com/seitarof/struct2json/internal/skeleton"
)

// Runner orchestrates schema loading, skeleton building and output.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

// SchemaLoader picks the type-introspection source for a run and resolves
// the root class in it.
type SchemaLoader interface {
	Load(cfg *Config) (schema.Provider, schema.ClassID, error)
}

type runnerImpl struct {
	loader    SchemaLoader
	generator generator.Generator
	logger    *zap.Logger
	clock     classifier.Clock
}

type schemaLoaderImpl struct {
	goSource parser.Provider
}

// NewRunner creates a default runner implementation.
func NewRunner(l SchemaLoader, g generator.Generator, logger *zap.Logger) Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runnerImpl{
		loader:    l,
		generator: g,
		logger:    logger,
		clock:     time.Now,
	}
}

// NewSchemaLoader returns a loader reading YAML schemas from disk and Go
// structs through p.
func NewSchemaLoader(p parser.Provider) SchemaLoader {
	return &schemaLoaderImpl{goSource: p}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	provider, root, err := r.loader.Load(cfg)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	c := classifier.New(classifier.DefaultRules(provider, classifier.DefaultRegistry(), r.clock)...)
	b := skeleton.New(provider, c,
		skeleton.WithFieldFilter(matcher.NewFieldFilter(cfg.IgnoreFields)),
		skeleton.WithMaxDepth(cfg.MaxDepth),
		skeleton.WithLogger(r.logger),
	)

	doc, err := b.Build(ctx, root)
	if err != nil {
		return fmt.Errorf("build skeleton: %w", err)
	}
	if doc.Len() == 0 {
		r.logger.Warn("skeleton has no fields", zap.String("type", cfg.TypeName))
	}

	if err := r.generator.Generate(cfg, doc); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	r.logger.Info("skeleton generated",
		zap.String("type", cfg.TypeName),
		zap.String("class", string(root)),
		zap.Int("fields", doc.Len()),
		zap.String("format", cfg.Format),
		zap.String("output", cfg.OutputFilename()),
	)
	return nil
}

func (l *schemaLoaderImpl) Load(cfg *Config) (schema.Provider, schema.ClassID, error) {
	if cfg.SchemaPath != "" {
		s, err := schema.LoadYAMLFile(cfg.SchemaPath)
		if err != nil {
			return nil, "", err
		}
		id := schema.ClassID(cfg.TypeName)
		if !s.Has(id) {
			return nil, "", fmt.Errorf("class %q not found in %q", cfg.TypeName, cfg.SchemaPath)
		}
		return s, id, nil
	}

	id, err := l.goSource.Load(cfg.PkgPath, cfg.TypeName)
	if err != nil {
		return nil, "", err
	}
	return l.goSource, id, nil
}
