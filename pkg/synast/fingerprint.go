package synast

import (
	"crypto/sha1" //nolint:gosec // SHA1 used for structural fingerprinting, not security.
	"encoding/hex"
	"hash"
)

// Fingerprint is a fixed-size digest of a subtree's structural shape.
//
// The digest covers node kind tags and the recursive structure of node- and
// list-valued fields only. Leaf text (identifiers, literal values) never
// enters the digest, so two subtrees that differ only in a variable name or
// a constant fingerprint identically. The classifier depends on this
// leaf-blindness; changing it reclassifies body edits.
type Fingerprint [sha1.Size]byte

// String returns a short hex form for logs and test failures.
func (fp Fingerprint) String() string {
	const shortLen = 8

	return hex.EncodeToString(fp[:shortLen])
}

// FingerprintNode computes the shape fingerprint of the subtree rooted at n.
// Deterministic and pure: equal shapes always produce equal fingerprints.
// Nodes of unknown kinds with no fields digest by kind tag alone, so the
// function is total over any well-formed tree.
func FingerprintNode(n *Node) Fingerprint {
	// SHA1 is used for shape fingerprinting; collision resistance against an
	// adversary is not required.
	hasher := sha1.New() //nolint:gosec // Not a security boundary.

	writeShape(hasher, n)

	var fp Fingerprint

	copy(fp[:], hasher.Sum(nil))

	return fp
}

// FingerprintSequence returns the ordered fingerprints of a statement slice.
func FingerprintSequence(nodes []*Node) []Fingerprint {
	seq := make([]Fingerprint, len(nodes))

	for idx, n := range nodes {
		seq[idx] = FingerprintNode(n)
	}

	return seq
}

// writeShape accumulates the node's kind and recurses into node- and
// list-valued fields. Leaf fields are skipped on purpose (see Fingerprint).
func writeShape(hasher hash.Hash, n *Node) {
	if n == nil {
		return
	}

	hasher.Write([]byte(n.Kind))

	for i := range n.Fields {
		switch f := &n.Fields[i]; f.Tag {
		case NodeField:
			writeShape(hasher, f.Child)
		case ListField:
			for _, child := range f.List {
				writeShape(hasher, child)
			}
		case LeafField:
		}
	}
}

// StructurallyEqual reports deep equality of two subtrees. Unlike
// Fingerprint it compares leaf text, so parameter names and literal
// defaults count. Kind mismatches, differing field sets, and list-length
// mismatches resolve to false; the comparison never panics on well-formed
// trees.
func StructurallyEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || len(a.Fields) != len(b.Fields) {
		return false
	}

	for i := range a.Fields {
		if !fieldsEqual(&a.Fields[i], &b.Fields[i]) {
			return false
		}
	}

	return true
}

func fieldsEqual(a, b *Field) bool {
	if a.Name != b.Name || a.Tag != b.Tag {
		return false
	}

	switch a.Tag {
	case LeafField:
		return a.Leaf == b.Leaf
	case NodeField:
		return StructurallyEqual(a.Child, b.Child)
	case ListField:
		if len(a.List) != len(b.List) {
			return false
		}

		for j := range a.List {
			if !StructurallyEqual(a.List[j], b.List[j]) {
				return false
			}
		}

		return true
	}

	return false
}
