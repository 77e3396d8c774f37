package engine

// OutcomeKind tags the result of feeding one input to the engine.
type OutcomeKind int

const (
	Continue OutcomeKind = iota
	Resolved
	Cancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the engine's decision after an input. Output is only set when
// Kind is Resolved.
type Outcome struct {
	Kind   OutcomeKind
	Output string
}

// Terminal reports whether the outcome ends the interaction.
func (o Outcome) Terminal() bool {
	return o.Kind == Resolved || o.Kind == Cancelled
}

var (
	continueOutcome  = Outcome{Kind: Continue}
	cancelledOutcome = Outcome{Kind: Cancelled}
)

func resolvedOutcome(output string) Outcome {
	return Outcome{Kind: Resolved, Output: output}
}
