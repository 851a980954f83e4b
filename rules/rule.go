package rules

import "github.com/expr-lang/expr/vm"

// ActionKind is the closed set of things a rule can do when it fires.
type ActionKind int

const (
	ActionPenalty ActionKind = iota
	ActionMessage
)

// Action is one step of a rule's THEN clause. Exactly one of Penalty or
// Message is meaningful, selected by Kind.
type Action struct {
	Kind    ActionKind
	Penalty float64
	Message string
}

// Rule is the atomic unit of ship advice: a condition → action list pair.
// Rules are immutable once parsed and are evaluated in file order; the
// first rule whose condition matches a room wins.
type Rule struct {
	Name         string
	ConditionSrc string      // expr source, as written in the rule file
	Actions      []Action    // never empty after parsing
	program      *vm.Program // compiled bytecode
}
