/*
Package bounty implements the core contract of the Quinty bounty system.

The contract owns bounty records and their lifecycle: a creator funds a
bounty (the reward is locked in the escrow contract), solvers submit hidden
solutions as SHA-256 commitments backed by a 10% deposit, the creator
selects the winner set, and each winner reveals the solution content to
claim the payout. Reveals are verified against the stored commitment. Once
every winner has revealed, the bounty is resolved; resolved bounties are
never mutated again.

Reputation counters and achievement badges are updated as side effects of
bounty creation and successful reveals through the reputation and badge
contracts wired in with SetAddresses.

# Contract notifications

BountyCreated notification:

	BountyCreated
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: deadline
	    type: Integer
	  - name: restricted
	    type: Boolean

SubmissionCreated notification:

	SubmissionCreated
	  - name: bountyId
	    type: Integer
	  - name: index
	    type: Integer
	  - name: submitter
	    type: Hash160

WinnersSelected notification:

	WinnersSelected
	  - name: bountyId
	    type: Integer
	  - name: winners
	    type: Array

SolutionRevealed notification:

	SolutionRevealed
	  - name: bountyId
	    type: Integer
	  - name: index
	    type: Integer
	  - name: solution
	    type: ByteArray
*/
package bounty

/*
Contract storage model.

Current conventions:
 <id>: decimal rendering of the bounty identifier
 <index>: decimal rendering of the submission index

# Summary
Key-value storage format:
 - 'x' -> int
   number of bounties ever created
 - 'o' -> interop.Hash160
   contract owner (deploying principal)
 - 'e' -> interop.Hash160
   escrow contract address
 - 'r' -> interop.Hash160
   reputation contract address
 - 'g' -> interop.Hash160
   badge contract address
 - 'b<id>' -> std.Serialize(Bounty)
   bounty record
 - 'n<id>' -> int
   number of submissions of the bounty
 - 's<id>:<index>' -> std.Serialize(Submission)
   submission record

# Escrow purposes
The reward of bounty <id> is locked in the escrow contract under purpose
SHA-256('b<id>'), the deposit of submission <index> under purpose
SHA-256('d<id>:<index>'). Deposits of non-winning submissions stay locked.
*/
