package bountystate

// Status is an enumeration for bounty lifecycle states.
type Status int

// Bounty lifecycle states. A bounty only ever moves forward:
// Open -> PendingReveal -> Resolved.
const (
	_ Status = iota

	// Open accepts submissions until the creator selects winners or the
	// deadline passes.
	Open

	// PendingReveal stands for bounties with a selected winner set waiting
	// for solution reveals.
	PendingReveal

	// Resolved is the terminal state, reached once every selected winner
	// has revealed.
	Resolved
)
