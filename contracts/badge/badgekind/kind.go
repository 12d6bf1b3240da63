package badgekind

// Kind is an enumeration for achievement badge kinds.
type Kind int

const (
	// BountyCreator is issued when an account funds a new bounty.
	BountyCreator Kind = iota
	// BountySolver is issued when an account reveals a winning solution.
	BountySolver
	// TeamMember is issued to members of a solving team.
	TeamMember
)
