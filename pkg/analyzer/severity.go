package analyzer

// Category is the coarse change class. The set is closed; downstream
// consumers switch on it.
type Category string

// Change categories, roughly ordered by impact.
const (
	CategoryUnchanged   Category = "unchanged"
	CategoryCosmetic    Category = "cosmetic"
	CategoryMinor       Category = "minor"
	CategorySignificant Category = "significant"
	CategoryStructural  Category = "structural"
	CategoryMajor       Category = "major"
)

// Reason is the fine-grained human-readable tag attached to a severity.
type Reason string

// Severity reasons.
const (
	ReasonNone        Reason = ""
	ReasonComment     Reason = "comment"
	ReasonWhitespace  Reason = "whitespace"
	ReasonImport      Reason = "import"
	ReasonAssignment  Reason = "assignment"
	ReasonControlFlow Reason = "control-flow"
	ReasonDefinition  Reason = "definition"
	ReasonLogic       Reason = "logic"
	ReasonSignature   Reason = "signature"
	ReasonNesting     Reason = "nesting"
	ReasonReorder     Reason = "reorder"
)

// Numeric priorities (higher = more impactful). The scorer rules carry
// fixed values; the body-classifier values slot between them.
const (
	priorityUnchanged   = 0
	priorityCosmetic    = 1
	priorityReorder     = 2
	priorityAssignment  = 3
	priorityMinorEdit   = 4
	priorityLogic       = 5
	priorityImport      = 7
	priorityStructural  = 8
	prioritySignature   = 8
	priorityControlFlow = 9
	priorityNesting     = 9
	priorityDefinition  = 10
)

// Severity is one classified change: a coarse category, a reason tag, and a
// numeric priority for ranking.
type Severity struct {
	Category Category `json:"category"`
	Reason   Reason   `json:"reason,omitempty"`
	Priority int      `json:"priority"`
}

// IsChange reports whether the severity represents a detected change.
func (s Severity) IsChange() bool {
	return s.Category != CategoryUnchanged
}

// Body-classification severities (fingerprint-multiset method).
var (
	// SeverityUnchanged means the ordered statement fingerprints matched.
	SeverityUnchanged = Severity{Category: CategoryUnchanged, Reason: ReasonNone, Priority: priorityUnchanged}

	// SeverityRearrangement means the same statements appear in a different
	// order.
	SeverityRearrangement = Severity{Category: CategoryCosmetic, Reason: ReasonReorder, Priority: priorityReorder}

	// SeverityMinorEdit means some statements changed in place: the distinct
	// fingerprint counts match but their contents differ.
	SeverityMinorEdit = Severity{Category: CategoryMinor, Reason: ReasonLogic, Priority: priorityMinorEdit}

	// SeverityStructural means statements were added, removed, or
	// restructured: the distinct fingerprint counts differ.
	SeverityStructural = Severity{Category: CategoryStructural, Reason: ReasonLogic, Priority: priorityStructural}
)

// Line-scorer severities, first matching rule wins (see scoreLine).
var (
	severityCommentLine    = Severity{Category: CategoryCosmetic, Reason: ReasonComment, Priority: priorityCosmetic}
	severityWhitespaceLine = Severity{Category: CategoryCosmetic, Reason: ReasonWhitespace, Priority: priorityCosmetic}
	severityImportLine     = Severity{Category: CategorySignificant, Reason: ReasonImport, Priority: priorityImport}
	severityAssignmentLine = Severity{Category: CategoryMinor, Reason: ReasonAssignment, Priority: priorityAssignment}
	severityControlLine    = Severity{Category: CategoryMajor, Reason: ReasonControlFlow, Priority: priorityControlFlow}
	severityDefinitionLine = Severity{Category: CategoryMajor, Reason: ReasonDefinition, Priority: priorityDefinition}
	severityLogicLine      = Severity{Category: CategorySignificant, Reason: ReasonLogic, Priority: priorityLogic}
)
