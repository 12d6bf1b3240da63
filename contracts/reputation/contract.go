package reputation

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/quinty-io/quinty-contract/common"
)

// UserStats holds per-account participation counters. Counters never
// decrease.
type UserStats struct {
	BountiesCreated int
	SubmissionsMade int
	BountiesWon     int
	// ValueEarned accumulates payout shares of won bounties.
	ValueEarned int
}

const (
	ownerKey    = 'o'
	statsPrefix = 'u'
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

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// Owner returns the principal currently allowed to mutate counters.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// TransferOwnership hands the mutation rights over to newOwner. It can be
// invoked only with the authority of the current owner. The system setup
// transfers ownership from the deploying principal to the bounty contract
// exactly once, after which the ledger accepts mutation calls only from it.
func TransferOwnership(newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic("invalid new owner")
	}

	ctx := storage.GetContext()
	common.CheckAuthorized(getOwner(ctx), "only owner can transfer ownership")

	storage.Put(ctx, []byte{ownerKey}, newOwner)
	runtime.Log("reputation ownership transferred")
}

// AddBountyCreated increments the "bounties created" counter of the user.
// It can be invoked only with the authority of the contract owner.
func AddBountyCreated(user interop.Hash160) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	stats := getStats(ctx, user)
	stats.BountiesCreated += 1
	putStats(ctx, user, stats)
}

// AddSubmission increments the "submissions made" counter of the user.
// It can be invoked only with the authority of the contract owner.
func AddSubmission(user interop.Hash160) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	stats := getStats(ctx, user)
	stats.SubmissionsMade += 1
	putStats(ctx, user, stats)
}

// AddBountyWon increments the "bounties won" counter of the user and adds
// value to the earned total. It can be invoked only with the authority of
// the contract owner.
func AddBountyWon(user interop.Hash160, value int) {
	if value < 0 {
		panic("negative value")
	}

	ctx := storage.GetContext()
	checkOwner(ctx)

	stats := getStats(ctx, user)
	stats.BountiesWon += 1
	stats.ValueEarned += value
	putStats(ctx, user, stats)
}

// GetUserStats returns participation counters of the user. Unknown users
// have all-zero stats.
func GetUserStats(user interop.Hash160) UserStats {
	if len(user) != interop.Hash160Len {
		panic("invalid user")
	}

	ctx := storage.GetReadOnlyContext()
	return getStats(ctx, user)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
}

func checkOwner(ctx storage.Context) {
	common.CheckAuthorized(getOwner(ctx), "not authorized to update reputation")
}

func getStats(ctx storage.Context, user interop.Hash160) UserStats {
	data := storage.Get(ctx, append([]byte{statsPrefix}, user...))
	if data != nil {
		return std.Deserialize(data.([]byte)).(UserStats)
	}

	return UserStats{}
}

func putStats(ctx storage.Context, user interop.Hash160, stats UserStats) {
	common.SetSerialized(ctx, append([]byte{statsPrefix}, user...), stats)
}
