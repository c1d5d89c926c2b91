package analyzer

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Python keywords that mark a line as a control-flow change.
var controlFlowKeywords = map[string]struct{}{
	"if": {}, "else": {}, "elif": {},
	"for": {}, "while": {},
	"try": {}, "except": {}, "finally": {},
	"with": {},
}

// Keywords that disqualify a line from counting as a plain assignment.
var assignmentGuardKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "def": {}, "class": {},
}

// scoreBodies line-diffs two body texts and classifies every added or
// removed line independently, in diff order. No merging or deduplication:
// one severity record per changed line.
func scoreBodies(oldText, newText string) []Severity {
	if oldText == newText {
		return nil
	}

	dmp := diffmatchpatch.New()

	oldChars, newChars, lineIndex := dmp.DiffLinesToChars(terminated(oldText), terminated(newText))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineIndex)

	var records []Severity

	for _, diff := range diffs {
		if diff.Type == diffmatchpatch.DiffEqual || diff.Text == "" {
			continue
		}

		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			records = append(records, scoreLine(line))
		}
	}

	return records
}

// terminated ensures the text ends with a newline so the line diff treats
// the final line like any other.
func terminated(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}

	return text + "\n"
}

// scoreLine classifies a single changed line by its trimmed text. Rules are
// ordered; the first match wins.
//
// Keyword checks match whole identifier tokens rather than substrings, so
// an identifier like "verify" no longer trips the "if" rule. A keyword
// inside a string literal still matches: with only raw line text available
// that false positive is not distinguishable, and it is accepted as a known
// heuristic limit.
func scoreLine(line string) Severity {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return severityCommentLine
	case trimmed == "":
		return severityWhitespaceLine
	case strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from "):
		return severityImportLine
	case strings.Contains(trimmed, "=") && !containsAnyKeyword(trimmed, assignmentGuardKeywords):
		return severityAssignmentLine
	case containsAnyKeyword(trimmed, controlFlowKeywords):
		return severityControlLine
	case strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "class "):
		return severityDefinitionLine
	default:
		return severityLogicLine
	}
}

// containsAnyKeyword reports whether any identifier token of the line is in
// the keyword set.
func containsAnyKeyword(line string, keywords map[string]struct{}) bool {
	for _, token := range identifierTokens(line) {
		if _, ok := keywords[token]; ok {
			return true
		}
	}

	return false
}

// identifierTokens splits a line into maximal identifier runs
// ([A-Za-z0-9_]+).
func identifierTokens(line string) []string {
	var tokens []string

	start := -1

	for idx, r := range line {
		if isIdentifierRune(r) {
			if start < 0 {
				start = idx
			}

			continue
		}

		if start >= 0 {
			tokens = append(tokens, line[start:idx])
			start = -1
		}
	}

	if start >= 0 {
		tokens = append(tokens, line[start:])
	}

	return tokens
}

func isIdentifierRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
