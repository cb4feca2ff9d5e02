package printer

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/inlinable"
	"inlinable/internal/parser"
	"inlinable/internal/query"
	"inlinable/internal/source"
)

// FormatVersion is written into the interface header.
const FormatVersion = 1

type Options struct {
	IndentWidth int
	UseTabs     bool
	// ModuleName defaults to the file's base name without extension.
	ModuleName string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	files   *source.FileSet
	builder *ast.Builder
	eval    *query.Evaluator
	writer  *Writer
}

// PrintFile renders the interface of one parsed file. Cycles met while
// deciding what is inlinable are reported through the evaluator and the
// affected declaration is printed as not inlinable; any other evaluation
// error aborts printing.
func PrintFile(ctx context.Context, eval *query.Evaluator, files *source.FileSet, fid ast.FileID, opt Options) (string, error) {
	if eval == nil {
		return "", errors.New("printer: nil evaluator")
	}
	b := eval.AST()
	file := b.Files.Get(fid)
	if file == nil {
		return "", errors.New("printer: missing ast file")
	}

	opt = opt.withDefaults()
	if opt.ModuleName == "" {
		path := files.Get(file.Span.File).Path
		opt.ModuleName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	p := printer{files: files, builder: b, eval: eval, writer: newWriter(opt)}
	p.writer.Comment("inlinable-interface-format-version: " + strconv.Itoa(FormatVersion))
	p.writer.Comment("module-name: " + opt.ModuleName)
	for _, id := range file.Decls {
		if err := p.printDecl(ctx, id, false); err != nil {
			return "", err
		}
	}
	return p.writer.String(), nil
}

// printDecl prints id when it belongs to the interface. layout forces
// stored properties of an inlinable type regardless of their access level.
func (p *printer) printDecl(ctx context.Context, id ast.DeclID, layout bool) error {
	d := p.builder.Decls.Get(id)
	if d.Inactive {
		return nil
	}
	stored := d.Kind.IsStorage() && !d.Body.IsValid() && !p.builder.HasModifier(id, "static")
	if !p.visible(id) && !(layout && stored) {
		return nil
	}

	header, err := p.header(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case d.Kind.IsNominal() || d.Kind == ast.DeclExtension:
		return p.printContainer(ctx, id, header)

	case d.Kind == ast.DeclFunc || d.Kind == ast.DeclInit || d.Kind == ast.DeclDeinit:
		body, err := p.inlinableBody(ctx, id, d.Body)
		if err != nil {
			return err
		}
		p.writer.Line(joinNonEmpty(header, body))

	case d.Kind.IsStorage():
		var value string
		if d.Init.IsValid() && layout {
			text, err := p.eval.InlinableText(ctx, d.Init)
			if err != nil {
				return err
			}
			value = "= " + strings.TrimSpace(text)
		}
		body, err := p.inlinableBody(ctx, id, d.Body)
		if err != nil {
			return err
		}
		p.writer.Line(joinNonEmpty(header, value, body))

	default:
		p.writer.Line(header)
	}
	return nil
}

func (p *printer) printContainer(ctx context.Context, id ast.DeclID, header string) error {
	layout, err := p.layoutIsInlinable(ctx, id)
	if err != nil {
		return err
	}
	p.writer.Line(header + " {")
	p.writer.indent()
	for _, m := range p.builder.Decls.Get(id).Members {
		if err := p.printDecl(ctx, m, layout); err != nil {
			return err
		}
	}
	p.writer.dedent()
	p.writer.Line("}")
	return nil
}

// layoutIsInlinable решает, видит ли клиент хранимые свойства типа.
// Для расширения смотрим на расширяемый тип.
func (p *printer) layoutIsInlinable(ctx context.Context, id ast.DeclID) (bool, error) {
	d := p.builder.Decls.Get(id)
	if d.Kind == ast.DeclExtension {
		nominal, err := p.eval.ExtendedNominal(ctx, id)
		if err != nil {
			return p.notInlinable(err)
		}
		if !nominal.IsValid() {
			return false, nil
		}
		id = nominal
	}
	ok, err := p.eval.IsInlinable(ctx, id)
	if err != nil {
		return p.notInlinable(err)
	}
	return ok, nil
}

// inlinableBody returns the body text when clients may inline it.
func (p *printer) inlinableBody(ctx context.Context, id ast.DeclID, body ast.NodeID) (string, error) {
	if !body.IsValid() {
		return "", nil
	}
	exp, err := p.eval.ResilienceExpansion(ctx, id)
	if err != nil {
		_, err = p.notInlinable(err)
		return "", err
	}
	if exp != query.Minimal {
		return "", nil
	}
	text, err := p.eval.InlinableText(ctx, body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *printer) notInlinable(err error) (bool, error) {
	if p.eval.DiagnoseCycle(err) {
		return false, nil
	}
	return false, err
}

// header renders [Span.Start, HeaderEnd) on one line without comments;
// default argument values are replaced by their inlinable text.
func (p *printer) header(ctx context.Context, id ast.DeclID) (string, error) {
	d := p.builder.Decls.Get(id)
	file := p.files.Get(d.Span.File)

	var sb strings.Builder
	pos := d.Span.Start
	for _, prm := range d.Params {
		if !prm.Default.IsValid() {
			continue
		}
		n := p.builder.Nodes.Get(prm.Default)
		sb.WriteString(squeeze(inlinable.StripComments(file.Text(source.Span{File: file.ID, Start: pos, End: n.Span.Start}))))
		text, err := p.eval.InlinableText(ctx, prm.Default)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
		pos = n.Span.End
	}
	end := max(d.HeaderEnd, pos)
	sb.WriteString(squeeze(inlinable.StripComments(file.Text(source.Span{File: file.ID, Start: pos, End: end}))))
	return strings.TrimSpace(sb.String()), nil
}

// visible: public и open, @usableFromInline, члены протоколов и
// публичных расширений.
func (p *printer) visible(id ast.DeclID) bool {
	b := p.builder
	if b.HasModifier(id, "public") || b.HasModifier(id, "open") || b.HasAttr(id, "usableFromInline") {
		return true
	}
	d := b.Decls.Get(id)
	if d.Kind == ast.DeclImport {
		return true
	}
	if d.Kind == ast.DeclExtension {
		return p.anyVisible(d.Members)
	}
	parent := b.Decls.Get(d.Parent)
	if parent == nil || b.HasModifier(id, "private") || b.HasModifier(id, "fileprivate") || b.HasModifier(id, "internal") {
		return false
	}
	return parent.Kind == ast.DeclProtocol && p.visible(d.Parent) ||
		parent.Kind == ast.DeclExtension && b.HasModifier(d.Parent, "public")
}

func (p *printer) anyVisible(ids []ast.DeclID) bool {
	for _, id := range ids {
		if !p.builder.Decls.Get(id).Inactive && p.visible(id) {
			return true
		}
	}
	return false
}

// squeeze заменяет каждую серию пробельных символов одним пробелом.
func squeeze(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

// CheckReparse parses an interface produced by PrintFile and reports
// whether it is free of syntax errors.
func CheckReparse(text string, conds parser.Conditions, maxDiag int) (ok bool, bag *diag.Bag) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<interface>", []byte(text)))
	bag = diag.NewBag(maxDiag)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parser.ParseFile(f, builder, parser.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		MaxErrors:  uint(bag.Cap()),
		Conditions: conds,
	})
	return !bag.HasErrors(), bag
}
