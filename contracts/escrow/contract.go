package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/quinty-io/quinty-contract/common"
)

// Account stores metadata of each escrow account.
type Account struct {
	// Active balance, free to lock or withdraw.
	Balance int
}

const (
	symbol   = "QGAS"
	decimals = 8

	accPrefix  = 'a'
	lockPrefix = 'l'

	supplyKey         = 's'
	ownerKey          = 'o'
	bountyContractKey = 'b'
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

	runtime.Log("escrow contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("escrow contract updated")
}

// SetBountyContract binds the escrow ledger to the bounty contract that is
// allowed to move custodied value. It can be invoked only by the contract
// owner and only once.
func SetBountyContract(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic("invalid contract address")
	}

	ctx := storage.GetContext()
	if storage.Get(ctx, []byte{bountyContractKey}) != nil {
		panic("bounty contract already set")
	}

	owner := storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	storage.Put(ctx, []byte{bountyContractKey}, addr)
	runtime.Log("escrow bound to bounty contract")
}

// Symbol returns the symbol of the custodied asset.
func Symbol() string {
	return symbol
}

// Decimals returns precision of escrow balances. It matches native GAS.
func Decimals() int {
	return decimals
}

// TotalSupply returns the overall amount of GAS custodied by the escrow
// ledger: the sum of all free balances and all locked purposes.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getSupply(ctx)
}

// BalanceOf returns the free (not locked) balance of the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getAccount(ctx, account).Balance
}

// LockedOf returns the amount locked under the specified purpose.
func LockedOf(purpose interop.Hash256) int {
	ctx := storage.GetReadOnlyContext()
	return getLocked(ctx, purpose)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Incoming GAS tops up the free balance of the sender, or of the Hash160
// passed as data.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: only GAS can be accepted for deposit")
	}
	if amount <= 0 {
		panic("onNEP17Payment: non positive amount")
	}

	rcv := from
	if data != nil {
		h := data.(interop.Hash160)
		switch len(h) {
		case interop.Hash160Len:
			rcv = h
		case 0:
		default:
			panic("onNEP17Payment: invalid data argument, expected Hash160")
		}
	}

	ctx := storage.GetContext()
	addToBalance(ctx, rcv, amount)
	storage.Put(ctx, []byte{supplyKey}, getSupply(ctx)+amount)

	runtime.Notify("Deposit", from, rcv, amount)
}

// Withdraw sends amount of custodied GAS from the free balance of user back
// to the user account. It can be invoked only by the account owner.
func Withdraw(user interop.Hash160, amount int) {
	if !runtime.CheckWitness(user) {
		panic("withdraw: you should be the owner of the wallet")
	}
	if amount <= 0 {
		panic("withdraw: non positive amount")
	}

	ctx := storage.GetContext()
	subFromBalance(ctx, user, amount, "withdraw: insufficient balance")
	storage.Put(ctx, []byte{supplyKey}, getSupply(ctx)-amount)

	transferred := gas.Transfer(runtime.GetExecutingScriptHash(), user, amount, nil)
	if !transferred {
		panic("withdraw: failed to transfer funds, aborting")
	}

	runtime.Notify("Withdraw", user, amount)
}

// Accept locks amount of the free balance of from under the given purpose.
// It can be invoked only by the bounty contract; all value movement between
// accounts and purposes is routed through it.
func Accept(from interop.Hash160, purpose interop.Hash256, amount int) {
	ctx := storage.GetContext()
	checkBountyContract(ctx)

	if len(purpose) != interop.Hash256Len {
		panic("accept: invalid purpose id")
	}
	if amount <= 0 {
		panic("accept: non positive amount")
	}

	subFromBalance(ctx, from, amount, "insufficient balance for escrow")

	key := append([]byte{lockPrefix}, purpose...)
	storage.Put(ctx, key, getLocked(ctx, purpose)+amount)

	runtime.Notify("Lock", purpose, from, amount)
}

// Release moves amount locked under the given purpose to the free balance
// of to. It can be invoked only by the bounty contract.
func Release(purpose interop.Hash256, to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkBountyContract(ctx)

	if amount <= 0 {
		panic("release: non positive amount")
	}

	locked := getLocked(ctx, purpose)
	if locked < amount {
		panic("insufficient custodied balance")
	}

	key := append([]byte{lockPrefix}, purpose...)
	if locked == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, locked-amount)
	}

	addToBalance(ctx, to, amount)

	runtime.Notify("Release", purpose, to, amount)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkBountyContract(ctx storage.Context) {
	bounty := storage.Get(ctx, []byte{bountyContractKey})
	if bounty == nil {
		panic("bounty contract is not set")
	}

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(bounty.(interop.Hash160)) {
		panic("caller is not the bounty contract")
	}
}

func getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, []byte{supplyKey})
	if supply != nil {
		return supply.(int)
	}

	return 0
}

func getAccount(ctx storage.Context, key interop.Hash160) Account {
	data := storage.Get(ctx, append([]byte{accPrefix}, key...))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Account)
	}

	return Account{}
}

func getLocked(ctx storage.Context, purpose interop.Hash256) int {
	locked := storage.Get(ctx, append([]byte{lockPrefix}, purpose...))
	if locked != nil {
		return locked.(int)
	}

	return 0
}

func addToBalance(ctx storage.Context, acc interop.Hash160, amount int) {
	if len(acc) != interop.Hash160Len {
		panic("invalid account")
	}

	account := getAccount(ctx, acc)
	account.Balance += amount
	common.SetSerialized(ctx, append([]byte{accPrefix}, acc...), account)
}

func subFromBalance(ctx storage.Context, acc interop.Hash160, amount int, panicMsg string) {
	account := getAccount(ctx, acc)
	if account.Balance < amount {
		panic(panicMsg)
	}

	key := append([]byte{accPrefix}, acc...)
	if account.Balance == amount {
		storage.Delete(ctx, key)
	} else {
		account.Balance -= amount
		common.SetSerialized(ctx, key, account)
	}
}
