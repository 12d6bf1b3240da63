package badge

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/quinty-io/quinty-contract/common"
	"github.com/quinty-io/quinty-contract/contracts/badge/badgekind"
)

// Badge is a non-transferable achievement record permanently bound to one
// account.
type Badge struct {
	ID    int
	Owner interop.Hash160
	Kind  badgekind.Kind
	// MetadataURI is resolved against the base URI set at deploy time.
	MetadataURI string
}

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains total supply of minted badges.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from the owner to their balance.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (owner + token ID) to token ID.
	prefixAccountToken byte = 0x02
	// prefixBadge contains map from token ID to the Badge structure.
	prefixBadge byte = 0x03
	// prefixMinter contains set of accounts allowed to mint.
	prefixMinter byte = 0x10
	// adminKey contains the registry administrator.
	adminKey byte = 0x11
	// baseURIKey contains the badge metadata base URI.
	baseURIKey byte = 0x12
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	admin := args[0].(interop.Hash160)
	if len(admin) != interop.Hash160Len {
		panic("invalid admin")
	}
	baseURI := args[1].(string)

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{prefixTotalSupply}, 0)
	storage.Put(ctx, []byte{adminKey}, admin)
	storage.Put(ctx, []byte{baseURIKey}, baseURI)

	runtime.Log("badge contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("badge contract updated")
}

// Symbol returns the badge token symbol.
func Symbol() string {
	return "QBDG"
}

// Decimals returns badge token decimals. Badges are indivisible.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of badges ever minted.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalSupply(ctx)
}

// OwnerOf returns the owner of the specified badge.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getBadge(ctx, tokenID).Owner
}

// Properties returns the kind and metadata URI of the specified badge.
func Properties(tokenID []byte) map[string]any {
	ctx := storage.GetReadOnlyContext()
	b := getBadge(ctx, tokenID)
	baseURI := storage.Get(ctx, []byte{baseURIKey}).(string)
	return map[string]any{
		"name": kindName(b.Kind),
		"kind": std.Itoa(int(b.Kind), 10),
		"uri":  baseURI + b.MetadataURI,
	}
}

// BalanceOf returns the overall number of badges owned by the specified
// owner.
func BalanceOf(owner interop.Hash160) int {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// Tokens returns iterator over a set of all minted badge IDs.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixBadge}, storage.KeysOnly|storage.RemovePrefix)
}

// TokensOf returns iterator over badge IDs owned by the specified owner.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// GetUserBadges returns identifiers of all badges owned by the specified
// owner.
func GetUserBadges(owner interop.Hash160) []int {
	var ids []int

	it := TokensOf(owner)
	for iterator.Next(it) {
		tokenID := iterator.Value(it).([]byte)
		ids = append(ids, convert.ToInteger(tokenID))
	}

	return ids
}

// Transfer always fails: badges are soulbound and can never change hands
// after mint. Transfers are rejected, not absent.
func Transfer(to interop.Hash160, tokenID []byte, data any) bool {
	panic("soulbound: transfer not allowed")
}

// AuthorizeMinter grants mint rights to the specified account. It can be
// invoked only by the registry administrator. The system setup authorizes
// the bounty contract.
func AuthorizeMinter(minter interop.Hash160) {
	if len(minter) != interop.Hash160Len {
		panic("invalid minter")
	}

	ctx := storage.GetContext()
	admin := storage.Get(ctx, []byte{adminKey}).(interop.Hash160)
	common.CheckOwnerWitness(admin)

	storage.Put(ctx, append([]byte{prefixMinter}, minter...), true)
	runtime.Log("badge minter authorized")
}

// MintBadge creates a new badge of the given kind owned by recipient and
// returns the badge identifier. It can be invoked only by an authorized
// minter or the registry administrator.
func MintBadge(recipient interop.Hash160, kind int, metadataURI string) int {
	ctx := storage.GetContext()
	checkMinter(ctx)

	if len(recipient) != interop.Hash160Len {
		panic("invalid recipient")
	}
	if kind < int(badgekind.BountyCreator) || kind > int(badgekind.TeamMember) {
		panic("unknown badge kind")
	}

	id := getTotalSupply(ctx) + 1
	storage.Put(ctx, []byte{prefixTotalSupply}, id)

	tokenID := convert.ToBytes(id)
	b := Badge{
		ID:          id,
		Owner:       recipient,
		Kind:        badgekind.Kind(kind),
		MetadataURI: metadataURI,
	}
	common.SetSerialized(ctx, append([]byte{prefixBadge}, tokenID...), b)
	updateBalance(ctx, tokenID, recipient, +1)

	postTransfer(nil, recipient, tokenID, nil)
	runtime.Notify("BadgeMinted", recipient, kind, id)
	return id
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkMinter(ctx storage.Context) {
	admin := storage.Get(ctx, []byte{adminKey}).(interop.Hash160)
	if runtime.CheckWitness(admin) {
		return
	}

	caller := runtime.GetCallingScriptHash()
	if storage.Get(ctx, append([]byte{prefixMinter}, caller...)) != nil {
		return
	}

	panic("not authorized to mint")
}

func getTotalSupply(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{prefixTotalSupply})
	return val.(int)
}

func getBadge(ctx storage.Context, tokenID []byte) Badge {
	data := storage.Get(ctx, append([]byte{prefixBadge}, tokenID...))
	if data == nil {
		panic("badge not found")
	}

	return std.Deserialize(data.([]byte)).(Badge)
}

// updateBalance updates the owner's balance and the owner's token set.
func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	var balance int
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenID...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// postTransfer sends Transfer notification to the network and calls
// onNEP11Payment method on contract recipients.
func postTransfer(from, to interop.Hash160, tokenID []byte, data any) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

func kindName(kind badgekind.Kind) string {
	switch kind {
	case badgekind.BountyCreator:
		return "Bounty Creator"
	case badgekind.BountySolver:
		return "Bounty Solver"
	case badgekind.TeamMember:
		return "Team Member"
	default:
		return "Unknown"
	}
}
