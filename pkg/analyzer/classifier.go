package analyzer

import (
	"github.com/Sumatoshi-tech/astdiff/pkg/synast"
)

// comparison carries the per-call state the classifier reads: both trees
// (for body text) and the scorer toggle. Nothing here is mutated after
// construction, so per-pair classifications are independent.
type comparison struct {
	oldTree    *synast.Tree
	newTree    *synast.Tree
	lineScorer bool
}

// classifyPair builds the change record for one matched definition pair.
// The caller drops records for which HasChange is false.
func (c *comparison) classifyPair(name string, oldDef, newDef *synast.Node) FunctionChange {
	change := FunctionChange{
		Name:            name,
		SignatureChange: signatureChanged(oldDef, newDef),
		Body:            classifyBody(oldDef.Statements(), newDef.Statements()),
		NestedChange:    nestedDefinitionsChanged(oldDef, newDef),
	}

	if c.lineScorer {
		change.LineChanges = scoreBodies(c.bodyText(c.oldTree, oldDef), c.bodyText(c.newTree, newDef))
	}

	return change
}

// bodyText returns the source text of a definition's body block.
func (c *comparison) bodyText(tree *synast.Tree, def *synast.Node) string {
	return tree.NodeText(def.BodyBlock())
}

// signatureChanged reports whether the parameter lists differ. Deep
// structural equality is used rather than fingerprints: parameter names and
// literal defaults matter here.
func signatureChanged(oldDef, newDef *synast.Node) bool {
	return !synast.StructurallyEqual(oldDef.Parameters(), newDef.Parameters())
}

// nestedDefinitionsChanged reports whether the name sets of nested function
// definitions differ between the two versions. A definition is excluded
// from its own set by arena index, not by structure, so a nested function
// that happens to look identical to its parent is still counted.
// Renames and additions/removals trip the flag; reordering does not.
func nestedDefinitionsChanged(oldDef, newDef *synast.Node) bool {
	oldNames := nestedDefinitionNames(oldDef)
	newNames := nestedDefinitionNames(newDef)

	if len(oldNames) != len(newNames) {
		return true
	}

	for name := range oldNames {
		if _, ok := newNames[name]; !ok {
			return true
		}
	}

	return false
}

func nestedDefinitionNames(def *synast.Node) map[string]struct{} {
	names := make(map[string]struct{})

	def.Walk(func(n *synast.Node) bool {
		if n.Kind == synast.KindFunction && n.Index != def.Index {
			if name := n.Name(); name != "" {
				names[name] = struct{}{}
			}
		}

		return true
	})

	return names
}

// classifyBody compares two statement lists by their shape fingerprints.
// Equal ordered sequences mean no change. Otherwise the distinct
// fingerprints decide: differing distinct counts mean statements were added
// or removed (structural); equal counts with differing contents mean
// in-place edits (minor); identical distinct sets mean the statements
// merely moved (rearrangement).
func classifyBody(oldBody, newBody []*synast.Node) Severity {
	oldSeq := synast.FingerprintSequence(oldBody)
	newSeq := synast.FingerprintSequence(newBody)

	if sequencesEqual(oldSeq, newSeq) {
		return SeverityUnchanged
	}

	oldSet := distinctFingerprints(oldSeq)
	newSet := distinctFingerprints(newSeq)

	if len(oldSet) != len(newSet) {
		return SeverityStructural
	}

	for fp := range oldSet {
		if _, ok := newSet[fp]; !ok {
			return SeverityMinorEdit
		}
	}

	return SeverityRearrangement
}

func sequencesEqual(a, b []synast.Fingerprint) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func distinctFingerprints(seq []synast.Fingerprint) map[synast.Fingerprint]struct{} {
	set := make(map[synast.Fingerprint]struct{}, len(seq))

	for _, fp := range seq {
		set[fp] = struct{}{}
	}

	return set
}
