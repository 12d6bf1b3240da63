package bounty

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
	"github.com/quinty-io/quinty-contract/common"
	"github.com/quinty-io/quinty-contract/contracts/badge/badgekind"
	"github.com/quinty-io/quinty-contract/contracts/bounty/bountystate"
)

type (
	// Bounty is a funded task record with a single escrowed reward.
	Bounty struct {
		ID          int
		Creator     interop.Hash160
		Description string
		// Amount of the escrowed reward, immutable once set.
		Amount int
		// Deadline is a millisecond timestamp gating submissions and
		// winner selection.
		Deadline   int
		Restricted bool
		// AllowList of solver accounts, consulted only for restricted
		// bounties.
		AllowList []interop.Hash160
		// SlashPercent is reserved, in basis points. Validated and
		// stored, no payout math reads it.
		SlashPercent int
		Status       bountystate.Status
		Winners      []interop.Hash160
		// WinnerIndexes reference submissions of the winner set.
		WinnerIndexes []int
		RevealedCount int
	}

	// Submission is a commit-reveal entry of a single solver.
	Submission struct {
		BountyID  int
		Submitter interop.Hash160
		// Commitment is an opaque SHA-256 digest of the hidden solution.
		Commitment interop.Hash256
		AuxData    [][]byte
		Deposit    int
		Revealed   bool
		// Solution is empty until a successful reveal.
		Solution []byte
	}
)

const (
	// depositPercent is the submission deposit fraction of the bounty
	// amount.
	depositPercent = 10
	// maxSlashPercent bounds the reserved slashing parameter, in basis
	// points.
	maxSlashPercent = 10000

	counterKey = 'x'
	ownerKey   = 'o'

	escrowContractKey     = 'e'
	reputationContractKey = 'r'
	badgeContractKey      = 'g'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	owner := args[0].(interop.Hash160)
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{ownerKey}, owner)

	runtime.Log("bounty contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("bounty contract updated")
}

// SetAddresses wires the bounty contract to the escrow, reputation and badge
// contracts. It can be invoked only by the contract owner and only once.
func SetAddresses(escrowContract, reputationContract, badgeContract interop.Hash160) {
	if len(escrowContract) != interop.Hash160Len ||
		len(reputationContract) != interop.Hash160Len ||
		len(badgeContract) != interop.Hash160Len {
		panic("invalid contract address")
	}

	ctx := storage.GetContext()
	if storage.Get(ctx, []byte{escrowContractKey}) != nil {
		panic("addresses already set")
	}

	owner := storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	storage.Put(ctx, []byte{escrowContractKey}, escrowContract)
	storage.Put(ctx, []byte{reputationContractKey}, reputationContract)
	storage.Put(ctx, []byte{badgeContractKey}, badgeContract)

	runtime.Log("bounty contract addresses set")
}

// CreateBounty creates a new bounty in the Open state, locks amount of the
// creator's escrow balance under the bounty purpose and returns the new
// bounty identifier. Deadline is a millisecond timestamp and must be in the
// future. For restricted bounties allowList enumerates the accounts allowed
// to submit. SlashPercent is reserved and must fit [0, 10000] basis points,
// the reserved parameter is accepted for call compatibility and ignored.
//
// The creator's "bounties created" reputation counter is incremented and a
// BountyCreator badge is issued as side effects.
func CreateBounty(creator interop.Hash160, description string, deadline int, restricted bool,
	allowList []interop.Hash160, slashPercent int, reserved any, amount int) int {
	common.CheckWitness(creator)

	if amount <= 0 {
		panic("amount must be positive")
	}
	if deadline <= runtime.GetTime() {
		panic("deadline must be in the future")
	}
	if slashPercent < 0 || slashPercent > maxSlashPercent {
		panic("slash percent out of range")
	}
	if restricted && len(allowList) == 0 {
		panic("restricted bounty requires an allow list")
	}
	for i := range allowList {
		if len(allowList[i]) != interop.Hash160Len {
			panic("invalid allow list entry")
		}
	}

	ctx := storage.GetContext()
	id := getBountyCount(ctx) + 1
	storage.Put(ctx, []byte{counterKey}, id)

	contract.Call(escrowContract(ctx), "accept", contract.All,
		creator, bountyPurpose(id), amount)

	b := Bounty{
		ID:           id,
		Creator:      creator,
		Description:  description,
		Amount:       amount,
		Deadline:     deadline,
		Restricted:   restricted,
		AllowList:    allowList,
		SlashPercent: slashPercent,
		Status:       bountystate.Open,
	}
	putBounty(ctx, b)

	contract.Call(reputationContract(ctx), "addBountyCreated", contract.All, creator)
	contract.Call(badgeContract(ctx), "mintBadge", contract.All,
		creator, int(badgekind.BountyCreator), "bounty-creator")

	runtime.Notify("BountyCreated", id, creator, amount, deadline, restricted)
	return id
}

// GetBountyData returns the bounty record by its identifier.
func GetBountyData(id int) Bounty {
	ctx := storage.GetReadOnlyContext()
	return getBounty(ctx, id)
}

// GetSubmission returns the submission record by bounty identifier and
// submission index.
func GetSubmission(bountyID, index int) Submission {
	ctx := storage.GetReadOnlyContext()
	return getSubmission(ctx, bountyID, index)
}

// BountyCount returns the number of bounties ever created.
func BountyCount() int {
	ctx := storage.GetReadOnlyContext()
	return getBountyCount(ctx)
}

// SubmissionCount returns the number of submissions of the given bounty.
func SubmissionCount(bountyID int) int {
	ctx := storage.GetReadOnlyContext()
	getBounty(ctx, bountyID)
	return getSubmissionCount(ctx, bountyID)
}

// SubmitSolution appends a commit-reveal entry to an open bounty and locks
// the submitter's deposit in escrow. Commitment is the SHA-256 digest of the
// solution content the submitter later reveals; the contract stores it
// opaquely. Deposit must equal exactly 10% of the bounty amount. Returns the
// submission index.
func SubmitSolution(submitter interop.Hash160, bountyID int, commitment interop.Hash256,
	auxData [][]byte, deposit int) int {
	common.CheckWitness(submitter)

	ctx := storage.GetContext()
	b := getBounty(ctx, bountyID)

	if b.Status != bountystate.Open {
		panic("bounty is not open")
	}
	if runtime.GetTime() >= b.Deadline {
		panic("deadline has passed")
	}
	if len(commitment) != interop.Hash256Len {
		panic("invalid commitment length")
	}
	if b.Restricted && !containsAddress(b.AllowList, submitter) {
		panic("submitter is not allowed")
	}
	if deposit != b.Amount*depositPercent/100 {
		panic("deposit must be 10% of bounty amount")
	}

	index := getSubmissionCount(ctx, bountyID)

	if deposit > 0 {
		contract.Call(escrowContract(ctx), "accept", contract.All,
			submitter, depositPurpose(bountyID, index), deposit)
	}

	sub := Submission{
		BountyID:   bountyID,
		Submitter:  submitter,
		Commitment: commitment,
		AuxData:    auxData,
		Deposit:    deposit,
	}
	putSubmission(ctx, bountyID, index, sub)
	storage.Put(ctx, submissionCountKey(bountyID), index+1)

	contract.Call(reputationContract(ctx), "addSubmission", contract.All, submitter)

	runtime.Notify("SubmissionCreated", bountyID, index, submitter)
	return index
}

// SelectWinners records the winner set of an open bounty and transitions it
// to the PendingReveal state. It can be invoked only by the bounty creator
// before the deadline. Winners and submissionIndexes must be of equal
// non-zero length, each index must reference a distinct existing submission
// and the account at the same position must match its submitter. No funds
// move at selection time.
func SelectWinners(bountyID int, winners []interop.Hash160, submissionIndexes []int) {
	ctx := storage.GetContext()
	b := getBounty(ctx, bountyID)

	if !runtime.CheckWitness(b.Creator) {
		panic("only bounty creator can select winners")
	}
	if b.Status != bountystate.Open {
		panic("bounty is not open")
	}
	if runtime.GetTime() >= b.Deadline {
		panic("deadline has passed")
	}
	if len(winners) == 0 || len(winners) != len(submissionIndexes) {
		panic("winners and submission indexes must be of equal non-zero length")
	}

	count := getSubmissionCount(ctx, bountyID)
	for i := range submissionIndexes {
		index := submissionIndexes[i]
		if index < 0 || index >= count {
			panic("invalid submission index")
		}
		for j := 0; j < i; j++ {
			if submissionIndexes[j] == index {
				panic("duplicate submission index")
			}
		}

		sub := getSubmission(ctx, bountyID, index)
		if !sub.Submitter.Equals(winners[i]) {
			panic("winner does not match submission")
		}
	}

	b.Winners = winners
	b.WinnerIndexes = submissionIndexes
	b.Status = bountystate.PendingReveal
	putBounty(ctx, b)

	runtime.Notify("WinnersSelected", bountyID, winners)
}

// RevealSolution publishes the solution content of a selected winning
// submission. It can be invoked only by the submitter while the bounty is
// pending reveal, and only once per submission. The content must hash to
// the stored commitment, otherwise the operation fails with "reveal
// mismatch" and no state changes.
//
// On success the winner's payout share plus their own deposit are released
// from escrow to the submitter, the winner's reputation counters are
// updated and a BountySolver badge is issued. The bounty resolves once
// every winner has revealed. The payout split across multiple winners is
// equal, with the integer remainder paid to the first listed winner.
func RevealSolution(bountyID, submissionIndex int, solution []byte) {
	ctx := storage.GetContext()
	b := getBounty(ctx, bountyID)

	if b.Status != bountystate.PendingReveal {
		panic("bounty is not pending reveal")
	}
	if !isWinnerIndex(b, submissionIndex) {
		panic("submission is not a selected winner")
	}

	sub := getSubmission(ctx, bountyID, submissionIndex)
	if !runtime.CheckWitness(sub.Submitter) {
		panic("only the submitter can reveal")
	}
	if sub.Revealed {
		panic("solution already revealed")
	}
	if !util.Equals(crypto.Sha256(solution), sub.Commitment) {
		panic("reveal mismatch")
	}

	share := b.Amount / len(b.WinnerIndexes)
	if submissionIndex == b.WinnerIndexes[0] {
		share += b.Amount % len(b.WinnerIndexes)
	}

	escrowH := escrowContract(ctx)
	contract.Call(escrowH, "release", contract.All,
		bountyPurpose(bountyID), sub.Submitter, share)
	if sub.Deposit > 0 {
		contract.Call(escrowH, "release", contract.All,
			depositPurpose(bountyID, submissionIndex), sub.Submitter, sub.Deposit)
	}

	sub.Revealed = true
	sub.Solution = solution
	putSubmission(ctx, bountyID, submissionIndex, sub)

	b.RevealedCount += 1
	if b.RevealedCount == len(b.WinnerIndexes) {
		b.Status = bountystate.Resolved
	}
	putBounty(ctx, b)

	contract.Call(reputationContract(ctx), "addBountyWon", contract.All, sub.Submitter, share)
	contract.Call(badgeContract(ctx), "mintBadge", contract.All,
		sub.Submitter, int(badgekind.BountySolver), "bounty-solver")

	runtime.Notify("SolutionRevealed", bountyID, submissionIndex, solution)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// bountyPurpose derives the escrow purpose identifier of the bounty reward.
// Decimal rendering keeps identifiers of distinct bounties and submissions
// collision-free regardless of integer width.
func bountyPurpose(id int) interop.Hash256 {
	return crypto.Sha256([]byte("b" + std.Itoa(id, 10)))
}

// depositPurpose derives the escrow purpose identifier of a submission
// deposit.
func depositPurpose(bountyID, index int) interop.Hash256 {
	return crypto.Sha256([]byte("d" + std.Itoa(bountyID, 10) + ":" + std.Itoa(index, 10)))
}

func bountyKey(id int) []byte {
	return []byte("b" + std.Itoa(id, 10))
}

func submissionKey(bountyID, index int) []byte {
	return []byte("s" + std.Itoa(bountyID, 10) + ":" + std.Itoa(index, 10))
}

func submissionCountKey(bountyID int) []byte {
	return []byte("n" + std.Itoa(bountyID, 10))
}

func getBountyCount(ctx storage.Context) int {
	count := storage.Get(ctx, []byte{counterKey})
	if count != nil {
		return count.(int)
	}

	return 0
}

func getBounty(ctx storage.Context, id int) Bounty {
	data := storage.Get(ctx, bountyKey(id))
	if data == nil {
		panic("bounty not found")
	}

	return std.Deserialize(data.([]byte)).(Bounty)
}

func putBounty(ctx storage.Context, b Bounty) {
	common.SetSerialized(ctx, bountyKey(b.ID), b)
}

func getSubmissionCount(ctx storage.Context, bountyID int) int {
	count := storage.Get(ctx, submissionCountKey(bountyID))
	if count != nil {
		return count.(int)
	}

	return 0
}

func getSubmission(ctx storage.Context, bountyID, index int) Submission {
	data := storage.Get(ctx, submissionKey(bountyID, index))
	if data == nil {
		panic("submission not found")
	}

	return std.Deserialize(data.([]byte)).(Submission)
}

func putSubmission(ctx storage.Context, bountyID, index int, sub Submission) {
	common.SetSerialized(ctx, submissionKey(bountyID, index), sub)
}

func escrowContract(ctx storage.Context) interop.Hash160 {
	return contractAddress(ctx, escrowContractKey)
}

func reputationContract(ctx storage.Context) interop.Hash160 {
	return contractAddress(ctx, reputationContractKey)
}

func badgeContract(ctx storage.Context) interop.Hash160 {
	return contractAddress(ctx, badgeContractKey)
}

func contractAddress(ctx storage.Context, key byte) interop.Hash160 {
	addr := storage.Get(ctx, []byte{key})
	if addr == nil {
		panic("addresses are not set")
	}

	return addr.(interop.Hash160)
}

func containsAddress(list []interop.Hash160, addr interop.Hash160) bool {
	for i := range list {
		if list[i].Equals(addr) {
			return true
		}
	}

	return false
}

func isWinnerIndex(b Bounty, index int) bool {
	for i := range b.WinnerIndexes {
		if b.WinnerIndexes[i] == index {
			return true
		}
	}

	return false
}
