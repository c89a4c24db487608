package sim

import (
	"errors"
	"fmt"
	"strconv"
)

// PolicyKind enumerates the scheduling disciplines the simulator supports.
type PolicyKind int

const (
	PolicyFCFS PolicyKind = iota
	PolicyLCFS
	PolicySJF
	PolicyRoundRobin
	PolicyPriority
)

var (
	// ErrUnknownPolicy is returned for a selector letter that names no policy.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
	// ErrMissingQuantum is returned when R or P is given without a positive quantum.
	ErrMissingQuantum = errors.New("policy requires a positive quantum")
)

// policySelectors maps selector letters to policy kinds.
// Shared by ParsePolicy and IsValidPolicy to avoid duplication.
var policySelectors = map[byte]PolicyKind{
	'F': PolicyFCFS,
	'L': PolicyLCFS,
	'S': PolicySJF,
	'R': PolicyRoundRobin,
	'P': PolicyPriority,
}

// AllPolicyKinds lists every kind in selector order (F, L, S, R, P).
var AllPolicyKinds = []PolicyKind{PolicyFCFS, PolicyLCFS, PolicySJF, PolicyRoundRobin, PolicyPriority}

// Policy is the scheduling configuration chosen once per run.
// Quantum is only meaningful for preemptive kinds.
type Policy struct {
	Kind    PolicyKind
	Quantum int64
}

// ParsePolicy parses a selector of the form F, L, S, R<n> or P<n>.
func ParsePolicy(selector string) (Policy, error) {
	if selector == "" {
		return Policy{}, fmt.Errorf("%w: empty selector", ErrUnknownPolicy)
	}
	kind, ok := policySelectors[selector[0]]
	if !ok {
		return Policy{}, fmt.Errorf("%w %q", ErrUnknownPolicy, selector)
	}
	rest := selector[1:]
	p := Policy{Kind: kind}
	if !p.Preemptive() {
		if rest != "" {
			return Policy{}, fmt.Errorf("policy %c takes no quantum, got %q", selector[0], selector)
		}
		return p, nil
	}
	if rest == "" {
		return Policy{}, fmt.Errorf("%w: %q", ErrMissingQuantum, selector)
	}
	q, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return Policy{}, fmt.Errorf("parsing quantum in %q: %w", selector, err)
	}
	if q <= 0 {
		return Policy{}, fmt.Errorf("%w: %q", ErrMissingQuantum, selector)
	}
	p.Quantum = q
	return p, nil
}

// IsValidPolicy returns true if selector parses into a policy.
func IsValidPolicy(selector string) bool {
	_, err := ParsePolicy(selector)
	return err == nil
}

// NewPolicy builds a policy of the given kind; quantum is dropped for
// non-preemptive kinds.
func NewPolicy(kind PolicyKind, quantum int64) Policy {
	p := Policy{Kind: kind}
	if p.Preemptive() {
		p.Quantum = quantum
	}
	return p
}

// Preemptive reports whether the engine caps bursts at the quantum.
func (p Policy) Preemptive() bool {
	return p.Kind == PolicyRoundRobin || p.Kind == PolicyPriority
}

// Aging reports whether dynamic priorities decay on dispatch.
func (p Policy) Aging() bool {
	return p.Kind == PolicyPriority
}

// Selector returns the command-line form of the policy, e.g. "R4".
func (p Policy) Selector() string {
	for sel, kind := range policySelectors {
		if kind == p.Kind {
			if p.Preemptive() {
				return fmt.Sprintf("%c%d", sel, p.Quantum)
			}
			return string(sel)
		}
	}
	return "?"
}

// String returns the report header name, e.g. "FCFS" or "RR 4".
func (p Policy) String() string {
	switch p.Kind {
	case PolicyFCFS:
		return "FCFS"
	case PolicyLCFS:
		return "LCFS"
	case PolicySJF:
		return "SJF"
	case PolicyRoundRobin:
		return fmt.Sprintf("RR %d", p.Quantum)
	case PolicyPriority:
		return fmt.Sprintf("PRIO %d", p.Quantum)
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(p.Kind))
	}
}
