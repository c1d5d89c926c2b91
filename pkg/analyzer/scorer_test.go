package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreLineRuleTable(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Severity
	}{
		{name: "comment", line: "    # explain the hack", want: severityCommentLine},
		{name: "blank", line: "       ", want: severityWhitespaceLine},
		{name: "import", line: "import os", want: severityImportLine},
		{name: "from import", line: "from typing import List", want: severityImportLine},
		{name: "assignment", line: "total = a + b", want: severityAssignmentLine},
		{name: "augmented assignment", line: "total += 1", want: severityAssignmentLine},
		{name: "conditional", line: "if total > 0:", want: severityControlLine},
		{name: "loop", line: "for item in items:", want: severityControlLine},
		{name: "exception", line: "except ValueError:", want: severityControlLine},
		{name: "resource scope", line: "with open(path) as fh:", want: severityControlLine},
		{name: "conditional assignment is control flow", line: "x = 1 if flag else 2", want: severityControlLine},
		{name: "definition", line: "def helper():", want: severityDefinitionLine},
		{name: "class definition", line: "class Widget:", want: severityDefinitionLine},
		{name: "logic catch-all", line: "return compute(a, b)", want: severityLogicLine},
		{name: "call", line: "print(item)", want: severityLogicLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreLine(tt.line))
		})
	}
}

func TestScoreLineKeywordsMatchTokensNotSubstrings(t *testing.T) {
	// "verify" contains "if", "forward" contains "for"; neither is a
	// control-flow keyword as a token.
	assert.Equal(t, severityAssignmentLine, scoreLine("verify = check()"))
	assert.Equal(t, severityAssignmentLine, scoreLine("forward = True"))
	assert.Equal(t, severityLogicLine, scoreLine("verify()"))
}

func TestScoreBodiesEmitsOneRecordPerChangedLine(t *testing.T) {
	oldText := "x = 1\nprint(x)\n"
	newText := "x = 2\nprint(x)\n"

	records := scoreBodies(oldText, newText)

	// One removed and one added line, in diff order.
	require.Len(t, records, 2)
	assert.Equal(t, severityAssignmentLine, records[0])
	assert.Equal(t, severityAssignmentLine, records[1])
}

func TestScoreBodiesEqualTextsProduceNothing(t *testing.T) {
	assert.Empty(t, scoreBodies("return 1\n", "return 1\n"))
}

func TestScoreBodiesHandlesMissingTrailingNewline(t *testing.T) {
	records := scoreBodies("return 1", "return 2")
	require.Len(t, records, 2)

	for _, severity := range records {
		assert.Equal(t, severityLogicLine, severity)
	}
}

func TestIdentifierTokens(t *testing.T) {
	assert.Equal(t, []string{"if", "x", "1"}, identifierTokens("if x == 1:"))
	assert.Equal(t, []string{"with_suffix", "call"}, identifierTokens("with_suffix = call()"))
	assert.Empty(t, identifierTokens("()=:"))
}
