package rules

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/starcrest/shipadvisor/model"
)

// baseScore is the advisory score of a ship with no findings.
const baseScore = 100.0

// armorHookMessage couples the essential-room multiplier to one specific
// advisory produced by the rule file. Preserved for compatibility with the
// established rule set; the coupling is deliberate but narrow, so extend
// with care.
const armorHookMessage = "Non-powered rooms should not have armor"

// liftMessage is the fixed advisory attached to over-long lift shafts.
const liftMessage = "Lift shafts longer than 5 rooms slow crew movement"

// structural room types are excluded from per-room rule evaluation.
var structuralTypes = map[string]bool{
	"Wall":     true,
	"Corridor": true,
	"Lift":     true,
}

// Evaluation is one scored finding: a room or lift label, its penalty (or
// bonus) contribution, and the advisory message.
type Evaluation struct {
	Label   string  `json:"label"`
	Penalty float64 `json:"penalty"`
	Message string  `json:"message"`
}

// Result is the outcome of scoring one layout. Issues is the subsequence of
// Evaluations with nonzero penalty.
type Result struct {
	Score       float64      `json:"score"`
	Evaluations []Evaluation `json:"evaluations"`
	Issues      []Evaluation `json:"issues"`
}

// Evaluator scores ship layouts against an ordered rule set. Safe for
// concurrent use: evaluation holds no state between calls.
type Evaluator struct {
	rules []*Rule
}

// NewEvaluator compiles every rule's condition into expr bytecode. A rule
// that fails to compile is dropped with a warning rather than failing the
// whole set; condition faults stay isolated to the rule that caused them.
func NewEvaluator(rs []*Rule) *Evaluator {
	var compiled []*Rule
	for _, r := range rs {
		prog, err := expr.Compile(r.ConditionSrc, expr.AsBool())
		if err != nil {
			slog.Warn("rule condition failed to compile, dropping rule", "rule", r.Name, "error", err)
			continue
		}
		r.program = prog
		compiled = append(compiled, r)
	}
	return &Evaluator{rules: compiled}
}

// Len returns the number of usable (compiled) rules.
func (e *Evaluator) Len() int { return len(e.rules) }

// Evaluate scores one layout. Non-structural rooms are matched against the
// rule set first-match-wins in file order; lifts are scored by a fixed
// built-in rule. The essential-room multiplier starts at 1.0, moves ±0.01
// per essential room depending on whether a rule triggered for it, and
// scales the penalty of any finding carrying the armor-hook advisory.
//
// No single bad room or rule aborts the pass: faults are logged and the
// room contributes nothing.
func (e *Evaluator) Evaluate(layout *model.ShipLayout) Result {
	result := Result{Score: baseScore}
	multiplier := 1.0

	for _, room := range layout.Rooms {
		if structuralTypes[room.RoomType] {
			continue
		}
		eval, triggered := e.evaluateRoom(room, layout.ArmorValue)

		if room.Essential {
			if triggered {
				multiplier += 0.01
			} else {
				multiplier -= 0.01
			}
		}
		if !triggered {
			continue
		}
		if eval.Message == armorHookMessage {
			eval.Penalty *= multiplier
		}
		result.Evaluations = append(result.Evaluations, eval)
	}

	for _, lift := range layout.Lifts {
		if eval, triggered := evaluateLift(lift); triggered {
			result.Evaluations = append(result.Evaluations, eval)
		}
	}

	for _, eval := range result.Evaluations {
		result.Score += eval.Penalty
		if eval.Penalty != 0 {
			result.Issues = append(result.Issues, eval)
		}
	}
	return result
}

// evaluateRoom runs the rules in order and returns the finding from the
// first rule whose condition holds. A condition or action fault means no
// rule triggered for this room.
func (e *Evaluator) evaluateRoom(room *model.Room, shipArmorValue int) (Evaluation, bool) {
	env := roomEnv(room, shipArmorValue)
	for _, r := range e.rules {
		out, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "room", room.Label(), "error", err)
			return Evaluation{}, false
		}
		match, ok := out.(bool)
		if !ok || !match {
			continue
		}

		eval, ok := extractActions(r, room.Label())
		if !ok {
			slog.Warn("rule actions malformed", "rule", r.Name, "room", room.Label())
			return Evaluation{}, false
		}
		slog.Debug("rule triggered", "rule", r.Name, "room", room.Label(), "penalty", eval.Penalty)
		return eval, true
	}
	return Evaluation{}, false
}

// extractActions reads a rule's first two actions positionally: penalty
// first, or message first with the roles swapped.
func extractActions(r *Rule, label string) (Evaluation, bool) {
	if len(r.Actions) < 2 {
		return Evaluation{}, false
	}
	first, second := r.Actions[0], r.Actions[1]
	if first.Kind != ActionPenalty {
		first, second = second, first
	}
	if first.Kind != ActionPenalty || second.Kind != ActionMessage {
		return Evaluation{}, false
	}
	return Evaluation{Label: label, Penalty: first.Penalty, Message: second.Message}, true
}

func liftLabel(l *model.Lift) string {
	return fmt.Sprintf("Lift col %d", l.Column)
}

// evaluateLift applies the built-in lift rule: shafts longer than 5 rooms
// are penalized 0.25 per room.
func evaluateLift(lift *model.Lift) (Evaluation, bool) {
	if lift.Kind != model.LiftKind || lift.Length() <= 5 {
		return Evaluation{}, false
	}
	return Evaluation{
		Label:   liftLabel(lift),
		Penalty: -0.25 * float64(lift.Length()),
		Message: liftMessage,
	}, true
}
