package nfa

import (
	"encoding/json"
	"fmt"
)

// Verdict is the outcome of a run.
type Verdict int

const (
	Rejected Verdict = iota
	Accepted
)

func (v Verdict) String() string {
	if v == Accepted {
		return "accepted"
	}
	return "rejected"
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "accepted":
		*v = Accepted
	case "rejected":
		*v = Rejected
	default:
		return fmt.Errorf("unknown verdict %q", s)
	}
	return nil
}

// Result is the outcome of Simulate.
type Result struct {
	Verdict Verdict

	// Configuration holds the states that were live when the run stopped.
	// It is empty when the run died before the input was exhausted.
	Configuration StateSet

	// Consumed counts the input symbols read before the run stopped.
	Consumed int
}

func (r Result) Accepted() bool { return r.Verdict == Accepted }

// InitialConfiguration is the epsilon-closure of the initial state.
func InitialConfiguration(a *Automaton) StateSet {
	return EpsilonClosure(a, NewStateSet(a.initial))
}

// Simulate runs input through a and decides acceptance.
// It never fails: symbols outside the alphabet match no transition and reject.
func Simulate(a *Automaton, input []string) Result {
	config := InitialConfiguration(a)
	consumed := 0
	for _, sym := range input {
		config = Step(a, config, sym)
		consumed++
		if config.Empty() {
			return Result{Verdict: Rejected, Configuration: config, Consumed: consumed}
		}
	}
	return Result{
		Verdict:       verdictFor(a, config),
		Configuration: config,
		Consumed:      consumed,
	}
}

// Trace returns the configuration after each step. Index 0 is the initial
// configuration; the trace stops early when a configuration becomes empty.
func Trace(a *Automaton, input []string) []StateSet {
	config := InitialConfiguration(a)
	trace := make([]StateSet, 0, len(input)+1)
	trace = append(trace, config)
	for _, sym := range input {
		config = Step(a, config, sym)
		trace = append(trace, config)
		if config.Empty() {
			break
		}
	}
	return trace
}

func verdictFor(a *Automaton, config StateSet) Verdict {
	if config.Intersects(a.finals) {
		return Accepted
	}
	return Rejected
}
