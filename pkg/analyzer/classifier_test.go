package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/astdiff/internal/pyparse"
	"github.com/Sumatoshi-tech/astdiff/pkg/symtab"
	"github.com/Sumatoshi-tech/astdiff/pkg/synast"
)

// parseDefinition parses a module and returns its tree and the named
// function definition.
func parseDefinition(t *testing.T, source, name string) (*synast.Tree, *synast.Node) {
	t.Helper()

	tree, err := pyparse.Parse(context.Background(), []byte(source))
	require.NoError(t, err)

	table := symtab.Build(tree)
	def, ok := table.Functions[name]
	require.True(t, ok, "function %q not found", name)

	return tree, def
}

func TestClassifyBodyUnchanged(t *testing.T) {
	_, oldDef := parseDefinition(t, "def f():\n    return 1\n", "f")
	_, newDef := parseDefinition(t, "def f():\n    return 2\n", "f")

	// Only the literal differs; fingerprints are leaf-blind.
	assert.Equal(t, SeverityUnchanged, classifyBody(oldDef.Statements(), newDef.Statements()))
}

func TestClassifyBodyStructuralOnCountChange(t *testing.T) {
	_, oldDef := parseDefinition(t, "def f():\n    return 1\n", "f")
	_, newDef := parseDefinition(t, "def f():\n    x = prepare()\n    return x\n", "f")

	assert.Equal(t, SeverityStructural, classifyBody(oldDef.Statements(), newDef.Statements()))
}

func TestSignatureChangedOnParameterRename(t *testing.T) {
	_, oldDef := parseDefinition(t, "def f(a):\n    pass\n", "f")
	_, newDef := parseDefinition(t, "def f(b):\n    pass\n", "f")

	// Deep equality sees parameter names even though fingerprints do not.
	assert.True(t, signatureChanged(oldDef, newDef))
}

func TestSignatureUnchangedOnIdenticalParameters(t *testing.T) {
	_, oldDef := parseDefinition(t, "def f(a, b=1):\n    pass\n", "f")
	_, newDef := parseDefinition(t, "def f(a, b=1):\n    return a\n", "f")

	assert.False(t, signatureChanged(oldDef, newDef))
}

func TestNestedDefinitionNamesExcludeSelfByIndex(t *testing.T) {
	_, def := parseDefinition(t, `
def outer():
    def inner():
        pass
    def helper():
        pass
`, "outer")

	names := nestedDefinitionNames(def)
	assert.Len(t, names, 2)
	assert.Contains(t, names, "inner")
	assert.Contains(t, names, "helper")
	assert.NotContains(t, names, "outer")
}

func TestNestedDefinitionsReorderDoesNotTrip(t *testing.T) {
	_, oldDef := parseDefinition(t, `
def outer():
    def a():
        pass
    def b():
        pass
`, "outer")
	_, newDef := parseDefinition(t, `
def outer():
    def b():
        pass
    def a():
        pass
`, "outer")

	assert.False(t, nestedDefinitionsChanged(oldDef, newDef))
}

func TestNestedDefinitionsAdditionTrips(t *testing.T) {
	_, oldDef := parseDefinition(t, `
def outer():
    def a():
        pass
`, "outer")
	_, newDef := parseDefinition(t, `
def outer():
    def a():
        pass
    def b():
        pass
`, "outer")

	assert.True(t, nestedDefinitionsChanged(oldDef, newDef))
}

func TestHasChangeInclusionRule(t *testing.T) {
	unchanged := FunctionChange{Name: "f", Body: SeverityUnchanged}
	assert.False(t, unchanged.HasChange())

	assert.True(t, FunctionChange{Name: "f", SignatureChange: true, Body: SeverityUnchanged}.HasChange())
	assert.True(t, FunctionChange{Name: "f", NestedChange: true, Body: SeverityUnchanged}.HasChange())
	assert.True(t, FunctionChange{Name: "f", Body: SeverityRearrangement}.HasChange())
	assert.True(t, FunctionChange{
		Name: "f",
		Body: SeverityUnchanged,
		LineChanges: []Severity{severityCommentLine},
	}.HasChange())
}
