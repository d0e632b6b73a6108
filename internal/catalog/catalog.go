// Package catalog indexes function-like constructs in ECMAScript source and
// derives redacted views and single-function extracts from that index.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/mvp-joe/srcnav/internal/jsast"
)

// Anonymous is the name of records without a resolvable identifier.
const Anonymous = "<anonymous>"

// Range is a half-open byte interval [Start, End).
type Range = jsast.Span

// FunctionRecord is one function-like construct. Body always lies within Full.
// Records are identified by (Name, Body.Start); names alone may repeat.
type FunctionRecord struct {
	Name string
	Full Range
	Body Range
}

// IsAnonymous reports whether the record has no name.
func (r FunctionRecord) IsAnonymous() bool {
	return r.Name == Anonymous
}

// Build parses source and returns its catalog ordered by Full.Start. Parse
// failures return an empty catalog; they are logged, never returned.
func Build(source, filename string) []FunctionRecord {
	records, err := BuildStrict(source, filename)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, jsast.ErrParseDegraded) {
			level = slog.LevelError
		}
		slog.Log(context.Background(), level, "function catalog unavailable", "file", filename, "error", err)
		return []FunctionRecord{}
	}
	return records
}

// BuildStrict is Build with the parse error exposed.
func BuildStrict(source, filename string) ([]FunctionRecord, error) {
	root, err := jsast.Parse([]byte(source), filename)
	if err != nil {
		return []FunctionRecord{}, err
	}
	return FromTree(root), nil
}

// FromTree builds the catalog of an already parsed tree.
func FromTree(root *jsast.Node) []FunctionRecord {
	b := newBuilder()
	jsast.WalkNode(root, b.visitFunction)
	jsast.WalkNode(root, b.visitDeclaration)
	return b.records()
}

// builder accumulates records for one catalog build. Records are keyed by
// body start: a method, field or pair and the function node it wraps share a
// body and produce one record.
type builder struct {
	list    []FunctionRecord
	byStart map[int]int
}

func newBuilder() *builder {
	return &builder{byStart: make(map[int]int)}
}

func (b *builder) add(name string, full, body Range) {
	if name == "" {
		name = Anonymous
	}
	if i, ok := b.byStart[body.Start]; ok {
		if b.list[i].IsAnonymous() && name != Anonymous {
			b.list[i].Name = name
		}
		return
	}
	b.byStart[body.Start] = len(b.list)
	b.list = append(b.list, FunctionRecord{Name: name, Full: full, Body: body})
}

// visitFunction is the first pass: declarations, expressions, block-bodied
// arrows, methods, and function-valued class fields or object pairs.
func (b *builder) visitFunction(n *jsast.Node) {
	switch n.Kind {
	case jsast.KindFunctionDeclaration:
		if n.Name != "" && n.HasBlockBody() {
			b.add(n.Name, n.Span, n.Body.Span)
		}
	case jsast.KindFunctionExpression, jsast.KindArrowFunction:
		if n.HasBlockBody() {
			b.add(n.Name, n.Span, n.Body.Span)
		}
	case jsast.KindMethodDefinition:
		if n.HasBlockBody() {
			b.add(n.Name, n.Span, n.Body.Span)
		}
	case jsast.KindClassProperty, jsast.KindObjectProperty:
		if isFunctionValue(n.Value) {
			b.add(n.Name, n.Span, n.Value.Body.Span)
		}
	}
}

// visitDeclaration is the second pass over variable declarations. It names
// anonymous function initializers after their binding and adds any that the
// first pass missed, spanning the whole declaration.
func (b *builder) visitDeclaration(n *jsast.Node) {
	if n.Kind != jsast.KindVariableDeclaration {
		return
	}
	for _, decl := range n.Children {
		if decl.Kind != jsast.KindVariableDeclarator || !isFunctionValue(decl.Value) {
			continue
		}
		b.add(decl.Name, n.Span, decl.Value.Body.Span)
	}
}

func (b *builder) records() []FunctionRecord {
	out := make([]FunctionRecord, len(b.list))
	copy(out, b.list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Full.Start < out[j].Full.Start
	})
	return out
}

func isFunctionValue(n *jsast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case jsast.KindFunctionExpression, jsast.KindArrowFunction:
		return n.HasBlockBody()
	}
	return false
}

// Names returns the unique non-anonymous names in catalog order.
func Names(records []FunctionRecord) []string {
	seen := make(map[string]struct{}, len(records))
	names := []string{}
	for _, r := range records {
		if r.IsAnonymous() {
			continue
		}
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	return names
}
