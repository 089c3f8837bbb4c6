package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"autojson-generator/internal/artifact"
	"autojson-generator/internal/schema"
	"autojson-generator/internal/sink"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts the schemas of marked types.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir    string
	logger *zap.Logger
}

// NewAnalyzer creates a new Analyzer. A nil logger discards output.
func NewAnalyzer(dir string, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{Dir: dir, logger: logger}
}

// LoadPackages loads the packages matching patterns and returns the schemas
// of every marked type, package by package in load order and, within a
// package, in source order.
// Patterns are standard Go package patterns (e.g. "./model", "example.com/api/...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*schema.ClassSchema, error) {
	cfg := &packages.Config{
		Context:   ctx,
		Mode:      LoadMode,
		Dir:       a.Dir,
		ParseFile: parseFile,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors. Errors inside our own generated files are
	// expected after a field change and are fixed by the next generation.
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		generated := generatedFiles(pkg)

		for _, e := range pkg.Errors {
			if file := errorFile(e.Pos); generated[file] {
				a.logger.Debug("ignoring error in generated file",
					zap.String("file", file),
					zap.String("error", e.Msg))

				continue
			}

			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var out []*schema.ClassSchema
	for _, pkg := range pkgs {
		schemas, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		a.logger.Debug("package analyzed",
			zap.String("package", pkg.PkgPath),
			zap.Int("schemas", len(schemas)))
		out = append(out, schemas...)
	}

	return out, nil
}

// parseFile keeps debug copies of failed renders out of type checking: only
// their package clause is parsed.
func parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if strings.HasSuffix(filename, sink.UnformattedSuffix) {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

// generatedFiles returns the files of pkg that carry the generated-code
// header.
func generatedFiles(pkg *packages.Package) map[string]bool {
	out := make(map[string]bool)

	for _, f := range pkg.Syntax {
		if len(f.Comments) == 0 || f.Comments[0].Pos() > f.Package {
			continue
		}

		if strings.TrimSpace(f.Comments[0].Text()) == artifact.Header {
			out[pkg.Fset.Position(f.Package).Filename] = true
		}
	}

	return out
}

// errorFile returns the file name of a "file:line:col" error position.
func errorFile(pos string) string {
	for range 2 {
		i := strings.LastIndexByte(pos, ':')
		if i < 0 {
			break
		}

		if _, err := strconv.Atoi(pos[i+1:]); err != nil {
			break
		}

		pos = pos[:i]
	}

	return pos
}

// processPackage extracts marked types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) ([]*schema.ClassSchema, error) {
	var out []*schema.ClassSchema

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				groups := []*ast.CommentGroup{ts.Doc}
				if !gen.Lparen.IsValid() {
					// Ungrouped declaration: the doc belongs to the GenDecl.
					groups = append(groups, gen.Doc)
				}

				args, marked, err := findDirective(groups...)
				if !marked {
					continue
				}

				pos := pkg.Fset.Position(ts.Pos())
				if err != nil {
					return nil, fmt.Errorf("%s: %w", pos, err)
				}

				s, err := a.schemaOf(pkg, ts, pos)
				if err != nil {
					return nil, err
				}

				s.EnclosingChain = args.Enclosing
				out = append(out, s)
			}
		}
	}

	return out, nil
}

// schemaOf builds the schema of one marked type spec.
func (a *Analyzer) schemaOf(pkg *packages.Package, ts *ast.TypeSpec, pos token.Position) (*schema.ClassSchema, error) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s: no type information for %s", pos, ts.Name.Name)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s: %s is an alias; mark the aliased type instead", pos, ts.Name.Name)
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a struct type", pos, ts.Name.Name)
	}

	s := &schema.ClassSchema{
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
		Dir:         filepath.Dir(pos.Filename),
		SimpleName:  ts.Name.Name,
		Position:    fmt.Sprintf("%s:%d:%d", filepath.Base(pos.Filename), pos.Line, pos.Column),
	}

	tparams := named.TypeParams()
	for i := range tparams.Len() {
		s.TypeParameters = append(s.TypeParameters, tparams.At(i).Obj().Name())
	}

	docs := fieldDocs(ts)
	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		p := schema.Property{
			Name:        field.Name(),
			FieldName:   field.Name(),
			Type:        typeOf(field.Type(), pkg.Types),
			Annotations: schema.TagAnnotations(st.Tag(i)),
		}

		if field.Embedded() {
			// Embedded fields are promoted, never assigned by name.
			p.Type = schema.Type{Kind: schema.KindStruct, Name: "embedded " + p.Type.Name}
		}

		if doc := docs[field.Name()]; doc != nil {
			if msg, ok := deprecation(doc.Doc, doc.Comment); ok {
				p.Annotations = append(p.Annotations, schema.NewDeprecated(msg))
			}
		}

		s.Properties = append(s.Properties, p)
	}

	return s, nil
}

// fieldDocs indexes the AST fields of a struct type spec by field name.
func fieldDocs(ts *ast.TypeSpec) map[string]*ast.Field {
	out := make(map[string]*ast.Field)

	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return out
	}

	for _, f := range st.Fields.List {
		for _, n := range f.Names {
			out[n.Name] = f
		}
	}

	return out
}

// Provider discovers schemas by analyzing Go packages.
type Provider struct {
	Dir      string
	Patterns []string
	Logger   *zap.Logger
}

// Discover implements driver.SchemaProvider.
func (p Provider) Discover(ctx context.Context) ([]*schema.ClassSchema, error) {
	if len(p.Patterns) == 0 {
		return nil, nil
	}

	return NewAnalyzer(p.Dir, p.Logger).LoadPackages(ctx, p.Patterns...)
}
