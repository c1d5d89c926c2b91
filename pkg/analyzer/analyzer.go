// Package analyzer compares two versions of a Python module and classifies,
// per matched function and method, how each definition changed. The engine
// is a pure function of its two inputs: it holds no state across calls and
// is safe for concurrent use.
package analyzer

import (
	"context"
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/astdiff/internal/pyparse"
	"github.com/Sumatoshi-tech/astdiff/pkg/symtab"
	"github.com/Sumatoshi-tech/astdiff/pkg/synast"
)

// Side identifies which input of a comparison failed to parse.
type Side string

// Comparison sides.
const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// ParseError reports a parse failure of one side. The comparison is
// all-or-nothing: no partial report accompanies it.
type ParseError struct {
	Side Side
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s source: %v", e.Side, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLineScorer enables the per-line severity scorer, which attaches one
// severity record per changed body line to each change record.
func WithLineScorer() Option {
	return func(a *Analyzer) {
		a.lineScorer = true
	}
}

// Analyzer is the change-classification engine. The zero value (via New)
// runs the fingerprint-multiset body classifier only.
type Analyzer struct {
	lineScorer bool
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze parses both sources and compares them. A parse failure is
// returned as a *ParseError naming the failing side.
func (a *Analyzer) Analyze(ctx context.Context, oldSource, newSource []byte) (*Report, error) {
	oldTree, err := pyparse.Parse(ctx, oldSource)
	if err != nil {
		return nil, &ParseError{Side: SideOld, Err: err}
	}

	newTree, err := pyparse.Parse(ctx, newSource)
	if err != nil {
		return nil, &ParseError{Side: SideNew, Err: err}
	}

	return a.AnalyzeTrees(oldTree, newTree), nil
}

// AnalyzeTrees compares two already-parsed trees. The trees are read only;
// the returned report shares nothing with them.
func (a *Analyzer) AnalyzeTrees(oldTree, newTree *synast.Tree) *Report {
	oldTable := symtab.Build(oldTree)
	newTable := symtab.Build(newTree)

	cmp := &comparison{
		oldTree:    oldTree,
		newTree:    newTree,
		lineScorer: a.lineScorer,
	}

	report := &Report{
		Added:     sortedNameDifference(newTable.Functions, oldTable.Functions),
		Removed:   sortedNameDifference(oldTable.Functions, newTable.Functions),
		Functions: []FunctionChange{},
		Methods:   []MethodChange{},
	}

	for _, name := range sortedNameIntersection(oldTable.Functions, newTable.Functions) {
		change := cmp.classifyPair(name, oldTable.Functions[name], newTable.Functions[name])
		if change.HasChange() {
			report.Functions = append(report.Functions, change)
		}
	}

	for _, className := range sortedNameIntersection(oldTable.Classes, newTable.Classes) {
		report.Methods = append(report.Methods, cmp.classifyMethods(
			className,
			oldTable.Classes[className],
			newTable.Classes[className],
		)...)
	}

	return report
}

// classifyMethods compares the methods two versions of a class share,
// returning records sorted by method name.
func (c *comparison) classifyMethods(className string, oldClass, newClass *synast.Node) []MethodChange {
	oldMethods := symtab.Methods(oldClass)
	newMethods := symtab.Methods(newClass)

	var changes []MethodChange

	for _, name := range sortedNameIntersection(oldMethods, newMethods) {
		change := c.classifyPair(name, oldMethods[name], newMethods[name])
		if change.HasChange() {
			changes = append(changes, MethodChange{
				Class:          className,
				FunctionChange: change,
			})
		}
	}

	return changes
}

// sortedNameDifference returns the names present in a but not in b, sorted.
func sortedNameDifference(a, b map[string]*synast.Node) []string {
	names := []string{}

	for name := range a {
		if _, ok := b[name]; !ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// sortedNameIntersection returns the names present in both maps, sorted.
func sortedNameIntersection(a, b map[string]*synast.Node) []string {
	var names []string

	for name := range a {
		if _, ok := b[name]; ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
