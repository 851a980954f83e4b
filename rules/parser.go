package rules

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// The rule language is a sequence of blocks:
//
//	RULE "<name>"
//	WHEN <condition>
//	THEN <action-list>
//
// Blocks run to the next RULE keyword or end of file. The condition is a
// free-form expr boolean expression spanning to the line before THEN. The
// action list is one or more name(parameter) calls separated by top-level
// commas. // comments run to end of line.

var (
	blockStart   = regexp.MustCompile(`(?m)^[ \t]*RULE[ \t]+"`)
	blockPattern = regexp.MustCompile(`(?s)RULE\s+"(.*?)"\s+WHEN\s+(.*?)\s+THEN\s+(.*)`)
	actionCall   = regexp.MustCompile(`(?s)^(\w+)\((.*)\)$`)
)

// defaultActions is substituted for a rule whose THEN clause yields no
// recognized actions, so evaluators can always assume a penalty and a
// message exist.
func defaultActions() []Action {
	return []Action{
		{Kind: ActionPenalty, Penalty: 0},
		{Kind: ActionMessage, Message: "No actions defined"},
	}
}

// ParseFile reads and parses a rule file.
func ParseFile(path string) ([]*Rule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return Parse(string(src)), nil
}

// Parse parses rule-language source into an ordered rule list. Source that
// matches no block at all yields an empty list, not an error; callers that
// care must check for zero rules.
func Parse(src string) []*Rule {
	var rules []*Rule

	starts := blockStart.FindAllStringIndex(src, -1)
	for i, loc := range starts {
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		rule := parseBlock(src[loc[0]:end])
		if rule == nil {
			continue
		}
		rules = append(rules, rule)
	}

	slog.Debug("rule source parsed", "rules", len(rules))
	return rules
}

func parseBlock(block string) *Rule {
	m := blockPattern.FindStringSubmatch(block)
	if m == nil {
		slog.Warn("rule block did not match grammar, skipping", "block", firstLine(block))
		return nil
	}

	name := strings.TrimSpace(m[1])
	condition := strings.TrimSpace(stripComments(m[2]))
	actions := parseActions(stripComments(m[3]))
	if len(actions) == 0 {
		actions = defaultActions()
	}

	return &Rule{Name: name, ConditionSrc: condition, Actions: actions}
}

// stripComments removes // comments from each line.
func stripComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

// parseActions splits the THEN clause on commas not nested inside parens and
// converts each name(parameter) call into an Action. Unrecognized action
// names are silently ignored.
func parseActions(s string) []Action {
	var actions []Action
	for _, part := range splitOutsideParens(s) {
		m := actionCall.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		name, param := m[1], coerceParam(strings.TrimSpace(m[2]))
		switch name {
		case "penalty":
			actions = append(actions, Action{Kind: ActionPenalty, Penalty: toNumber(param)})
		case "message":
			actions = append(actions, Action{Kind: ActionMessage, Message: toText(param)})
		}
	}
	return actions
}

// splitOutsideParens splits s on commas that are not nested inside ( ).
func splitOutsideParens(s string) []string {
	var parts []string
	depth := 0
	current := strings.Builder{}
	for _, ch := range s {
		switch {
		case ch == '(':
			depth++
			current.WriteRune(ch)
		case ch == ')':
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		case ch == ',' && depth == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// coerceParam converts an action parameter in this order: quoted string,
// None/True/False literal, integer, float, bracket-delimited list/dict
// literal (parsed structurally, not as code), otherwise the raw string.
func coerceParam(val string) any {
	if len(val) >= 2 {
		if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
			return val[1 : len(val)-1]
		}
	}
	switch val {
	case "None":
		return nil
	case "True":
		return true
	case "False":
		return false
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	if len(val) >= 2 {
		if lit, ok := parseBracketLiteral(val); ok {
			return lit
		}
	}
	return val
}

// parseBracketLiteral structurally parses [a, b, ...] and {k: v, ...}
// literals, recursing into coerceParam for the elements.
func parseBracketLiteral(val string) (any, bool) {
	switch {
	case val[0] == '[' && val[len(val)-1] == ']':
		inner := strings.TrimSpace(val[1 : len(val)-1])
		if inner == "" {
			return []any{}, true
		}
		var items []any
		for _, item := range splitBracketAware(inner) {
			items = append(items, coerceParam(strings.TrimSpace(item)))
		}
		return items, true
	case val[0] == '{' && val[len(val)-1] == '}':
		inner := strings.TrimSpace(val[1 : len(val)-1])
		entries := make(map[string]any)
		if inner == "" {
			return entries, true
		}
		for _, entry := range splitBracketAware(inner) {
			k, v, found := strings.Cut(entry, ":")
			if !found {
				return nil, false
			}
			key := toText(coerceParam(strings.TrimSpace(k)))
			entries[key] = coerceParam(strings.TrimSpace(v))
		}
		return entries, true
	}
	return nil, false
}

// splitBracketAware splits on commas that are not nested inside [ ] or { }.
func splitBracketAware(s string) []string {
	var parts []string
	depth := 0
	current := strings.Builder{}
	for _, ch := range s {
		switch ch {
		case '[', '{':
			depth++
			current.WriteRune(ch)
		case ']', '}':
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				continue
			}
			current.WriteRune(ch)
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
