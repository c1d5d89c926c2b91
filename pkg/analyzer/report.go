package analyzer

// FunctionChange is the change record for one matched definition pair.
// Records where nothing changed are never emitted.
type FunctionChange struct {
	// Name is the definition name both versions share.
	Name string `json:"name"`
	// SignatureChange is true when the parameter lists differ structurally,
	// including parameter names and literal defaults.
	SignatureChange bool `json:"signature_change"`
	// Body is the coarse body severity from the fingerprint-multiset method.
	Body Severity `json:"body_change"`
	// LineChanges holds one severity per changed body line when the line
	// scorer is enabled, in diff order.
	LineChanges []Severity `json:"line_changes,omitempty"`
	// NestedChange is true when the nested-definition name sets differ.
	NestedChange bool `json:"nested_change"`
}

// HasChange reports whether the record carries at least one detected
// change. Pairs for which this is false are excluded from the report.
func (fc FunctionChange) HasChange() bool {
	return fc.SignatureChange ||
		fc.NestedChange ||
		fc.Body.IsChange() ||
		len(fc.LineChanges) > 0
}

// MethodChange is a FunctionChange additionally tagged with the owning
// class name.
type MethodChange struct {
	Class string `json:"class"`
	FunctionChange
}

// Report is the aggregate result of one comparison. All slices are sorted
// lexicographically (methods by class, then name) so output is
// reproducible. Immutable once returned.
type Report struct {
	// Added holds names present only in the new version.
	Added []string `json:"added_functions"`
	// Removed holds names present only in the old version.
	Removed []string `json:"removed_functions"`
	// Functions holds the changed matched definitions from the function
	// table (which includes methods recorded under their bare name).
	Functions []FunctionChange `json:"changed_functions"`
	// Methods holds changed methods of classes present in both versions.
	Methods []MethodChange `json:"changed_class_methods"`
}

// Empty reports whether the comparison found no differences at all.
func (r *Report) Empty() bool {
	return len(r.Added) == 0 &&
		len(r.Removed) == 0 &&
		len(r.Functions) == 0 &&
		len(r.Methods) == 0
}
