package skeleton

import (
	"context"

	"go.uber.org/zap"

	"github.com/seitarof/struct2json/internal/classifier"
	"github.com/seitarof/struct2json/internal/matcher"
	"github.com/seitarof/struct2json/internal/schema"
)

// Builder synthesizes example documents for classes.
type Builder interface {
	// Build returns the skeleton of a class. An empty or unknown class
	// yields an empty document. The only error is ctx.Err().
	Build(ctx context.Context, id schema.ClassID) (*Document, error)
}

// Option configures a Builder.
type Option func(*builderImpl)

// WithFieldFilter replaces the default static-field filter.
func WithFieldFilter(f matcher.FieldFilter) Option {
	return func(b *builderImpl) { b.filter = f }
}

// WithMaxDepth limits document nesting; deeper objects become nil.
// Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(b *builderImpl) { b.maxDepth = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *builderImpl) { b.logger = l }
}

type builderImpl struct {
	provider   schema.Provider
	classifier classifier.Classifier
	filter     matcher.FieldFilter
	maxDepth   int
	logger     *zap.Logger
}

// traversal is the state of one Build call.
type traversal struct {
	ctx   context.Context
	path  map[schema.ClassID]bool
	depth int
}

// New creates a builder over a schema provider.
func New(p schema.Provider, c classifier.Classifier, opts ...Option) Builder {
	b := &builderImpl{
		provider:   p,
		classifier: c,
		filter:     matcher.NewFieldFilter(nil),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *builderImpl) Build(ctx context.Context, id schema.ClassID) (*Document, error) {
	st := &traversal{ctx: ctx, path: map[schema.ClassID]bool{}}
	return b.build(st, id)
}

func (b *builderImpl) build(st *traversal, id schema.ClassID) (*Document, error) {
	doc := NewDocument()
	if id == "" {
		return doc, nil
	}
	fields, ok := b.provider.Fields(id)
	if !ok {
		b.logger.Debug("class not resolved", zap.String("class", string(id)))
		return doc, nil
	}

	st.path[id] = true
	st.depth++
	defer func() {
		delete(st.path, id)
		st.depth--
	}()

	for _, f := range fields {
		if err := st.ctx.Err(); err != nil {
			return nil, err
		}
		if !b.filter.Accept(f) {
			continue
		}
		v, err := b.value(st, f.Type, f)
		if err != nil {
			return nil, err
		}
		doc.Set(f.Name, v)
	}
	return doc, nil
}

// value synthesizes the example for one type. Array and collection
// elements go through the same classification as fields, with the owning
// field's name and annotations.
func (b *builderImpl) value(st *traversal, t schema.TypeDescriptor, f schema.FieldDescriptor) (any, error) {
	res := b.classifier.Classify(t, f)
	switch res.Category {
	case classifier.CategoryArray, classifier.CategoryCollection:
		if res.Elem == nil {
			b.logger.Debug("element type not resolved",
				zap.String("field", f.Name),
				zap.String("type", t.Name),
			)
			return []any{""}, nil
		}
		elem, err := b.value(st, *res.Elem, f)
		if err != nil {
			return nil, err
		}
		return []any{elem}, nil
	case classifier.CategoryObject:
		return b.nested(st, res.Class, f)
	default:
		return res.Literal, nil
	}
}

func (b *builderImpl) nested(st *traversal, id schema.ClassID, f schema.FieldDescriptor) (any, error) {
	if st.path[id] {
		b.logger.Debug("cycle truncated",
			zap.String("field", f.Name),
			zap.String("class", string(id)),
		)
		return nil, nil
	}
	if b.maxDepth > 0 && st.depth >= b.maxDepth {
		b.logger.Debug("max depth reached",
			zap.String("field", f.Name),
			zap.Int("depth", st.depth),
		)
		return nil, nil
	}
	doc, err := b.build(st, id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
