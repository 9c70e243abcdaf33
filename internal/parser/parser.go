package parser

import (
	"fmt"
	"go/types"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/seitarof/struct2json/internal/schema"
)

// Provider is a schema.Provider backed by Go packages loaded from source.
type Provider interface {
	schema.Provider
	// Load resolves a struct type in a package and returns its class ID.
	Load(pkgPath string, typeName string) (schema.ClassID, error)
}

// Option configures a Provider.
type Option func(*parserImpl)

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(p *parserImpl) { p.dir = dir }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *parserImpl) { p.logger = l }
}

type parserImpl struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	cache   map[string]*packages.Package
	classes map[schema.ClassID]*types.Named
}

// New returns a Go source provider.
func New(opts ...Option) Provider {
	p := &parserImpl{
		logger:  zap.NewNop(),
		cache:   map[string]*packages.Package{},
		classes: map[schema.ClassID]*types.Named{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parserImpl) Load(pkgPath string, typeName string) (schema.ClassID, error) {
	pkg, err := p.loadPackage(pkgPath)
	if err != nil {
		return "", err
	}

	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return "", fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return "", fmt.Errorf("struct %q not found in package %q", typeName, pkgPath)
	}

	named, ok := namedStruct(obj.Type())
	if !ok {
		return "", fmt.Errorf("%q in package %q is not a struct type", typeName, pkgPath)
	}
	return p.register(named), nil
}

func (p *parserImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[pkgPath]; ok {
		return cached, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedModule,
		Dir: p.dir,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	p.cache[pkgPath] = pkgs[0]
	p.logger.Debug("package loaded", zap.String("package", pkgs[0].PkgPath))
	return pkgs[0], nil
}

func (p *parserImpl) register(named *types.Named) schema.ClassID {
	id := classID(named)
	p.mu.Lock()
	p.classes[id] = named
	p.mu.Unlock()
	return id
}

func (p *parserImpl) lookup(id schema.ClassID) (*types.Named, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	named, ok := p.classes[id]
	return named, ok
}

func (p *parserImpl) Fields(id schema.ClassID) ([]schema.FieldDescriptor, bool) {
	named, ok := p.lookup(id)
	if !ok {
		return nil, false
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, false
	}
	return flattenFields(st, p.describe), true
}

func (p *parserImpl) ResolveClass(t schema.TypeDescriptor) (schema.ClassID, bool) {
	if t.Class == "" {
		return "", false
	}
	if _, ok := p.lookup(t.Class); !ok {
		return "", false
	}
	return t.Class, true
}

func (p *parserImpl) ElementType(t schema.TypeDescriptor) (schema.TypeDescriptor, bool) {
	if len(t.TypeArgs) != 1 {
		return schema.TypeDescriptor{}, false
	}
	return t.TypeArgs[0], true
}

func (p *parserImpl) SuperTypes(t schema.TypeDescriptor) []schema.TypeDescriptor {
	return t.SuperTypes
}

// describe converts a Go type into a descriptor. Named struct types it
// meets are registered so that Fields can resolve them later.
func (p *parserImpl) describe(t types.Type) schema.TypeDescriptor {
	d := &describer{p: p, inProgress: map[*types.Named]bool{}}
	return d.describe(t)
}

// describer tracks named types under description so that recursive named
// slices such as `type Tree []Tree` terminate.
type describer struct {
	p          *parserImpl
	inProgress map[*types.Named]bool
}

func (d *describer) describe(t types.Type) schema.TypeDescriptor {
	switch v := t.(type) {
	case *types.Alias:
		return d.describe(types.Unalias(v))
	case *types.Pointer:
		return d.describe(v.Elem())
	case *types.Basic:
		return describeBasic(v)
	case *types.Slice:
		return d.describeSequence(v.Elem())
	case *types.Array:
		return d.describeSequence(v.Elem())
	case *types.Named:
		return d.describeNamed(v)
	case *types.TypeParam:
		return schema.TypeDescriptor{Name: v.Obj().Name(), Kind: schema.KindDeclared}
	case *types.Map:
		return schema.TypeDescriptor{Name: "map", Kind: schema.KindDeclared}
	default:
		return schema.TypeDescriptor{Name: strings.TrimSpace(types.TypeString(t, nil)), Kind: schema.KindDeclared}
	}
}

func describeBasic(b *types.Basic) schema.TypeDescriptor {
	info := b.Info()
	switch {
	case info&types.IsString != 0:
		return schema.TypeDescriptor{Name: "string", Kind: schema.KindDeclared}
	case info&types.IsComplex != 0:
		// encoding/json cannot marshal complex numbers.
		return schema.TypeDescriptor{Name: b.Name(), Kind: schema.KindDeclared}
	case info&(types.IsBoolean|types.IsNumeric) != 0:
		return schema.TypeDescriptor{Name: b.Name(), Kind: schema.KindPrimitive}
	default:
		return schema.TypeDescriptor{Name: b.Name(), Kind: schema.KindDeclared}
	}
}

func (d *describer) describeSequence(elem types.Type) schema.TypeDescriptor {
	// []byte marshals as a base64 string.
	if b, ok := types.Unalias(elem).(*types.Basic); ok && b.Kind() == types.Byte {
		return schema.TypeDescriptor{Name: "[]byte", Kind: schema.KindDeclared}
	}
	e := d.describe(elem)
	return schema.TypeDescriptor{Name: "[]" + e.Name, Kind: schema.KindArray, Elem: &e}
}

func (d *describer) describeNamed(n *types.Named) schema.TypeDescriptor {
	obj := n.Obj()
	if obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
		return schema.TypeDescriptor{Name: "Time", Kind: schema.KindDeclared}
	}

	if d.inProgress[n] {
		// Re-entered through its own element type; leave it opaque.
		return schema.TypeDescriptor{Name: obj.Name(), Kind: schema.KindDeclared}
	}
	d.inProgress[n] = true
	defer delete(d.inProgress, n)

	switch under := n.Underlying().(type) {
	case *types.Struct:
		return schema.TypeDescriptor{Name: obj.Name(), Kind: schema.KindDeclared, Class: d.p.register(n)}
	case *types.Basic:
		return describeBasic(under)
	case *types.Slice:
		if b, ok := types.Unalias(under.Elem()).(*types.Basic); ok && b.Kind() == types.Byte {
			return schema.TypeDescriptor{Name: obj.Name(), Kind: schema.KindDeclared}
		}
		// Named slice types behave like declared collections.
		elem := d.describe(under.Elem())
		return schema.TypeDescriptor{
			Name:       obj.Name(),
			Kind:       schema.KindDeclared,
			TypeArgs:   []schema.TypeDescriptor{elem},
			SuperTypes: []schema.TypeDescriptor{{Name: "Collection[" + elem.Name + "]", Kind: schema.KindDeclared}},
		}
	case *types.Array:
		return d.describeSequence(under.Elem())
	default:
		return schema.TypeDescriptor{Name: obj.Name(), Kind: schema.KindDeclared}
	}
}

func namedStruct(t types.Type) (*types.Named, bool) {
	switch v := t.(type) {
	case *types.Alias:
		return namedStruct(types.Unalias(v))
	case *types.Named:
		if _, ok := v.Underlying().(*types.Struct); ok {
			return v, true
		}
	}
	return nil, false
}

// classID is the fully qualified type string, including type arguments of
// generic instantiations.
func classID(n *types.Named) schema.ClassID {
	return schema.ClassID(types.TypeString(n, nil))
}
