package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// newEscrowInvoker deploys the escrow contract alone, without binding it to
// a bounty contract.
func newEscrowInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)

	c := neotest.CompileFile(t, e.CommitteeHash, escrowPath, path.Join(escrowPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return e, e.CommitteeInvoker(c.Hash)
}

func TestEscrow_TokenInfo(t *testing.T) {
	_, c := newEscrowInvoker(t)

	c.Invoke(t, "QGAS", "symbol")
	c.Invoke(t, 8, "decimals")
	c.Invoke(t, 0, "totalSupply")
}

func TestEscrow_Deposit(t *testing.T) {
	e, c := newEscrowInvoker(t)

	acc := e.NewAccount(t)
	gasInv := e.NewInvoker(e.NativeHash(t, nativenames.Gas), acc)

	const amount = 3 * gasDecimals
	gasInv.Invoke(t, true, "transfer", acc.ScriptHash(), c.Hash, int64(amount), nil)

	c.Invoke(t, amount, "balanceOf", acc.ScriptHash())
	c.Invoke(t, amount, "totalSupply")

	t.Run("to another account", func(t *testing.T) {
		other := e.NewAccount(t)
		gasInv.Invoke(t, true, "transfer", acc.ScriptHash(), c.Hash, int64(amount), other.ScriptHash())

		c.Invoke(t, amount, "balanceOf", other.ScriptHash())
		c.Invoke(t, amount, "balanceOf", acc.ScriptHash())
		c.Invoke(t, 2*amount, "totalSupply")
	})

	t.Run("non-GAS asset", func(t *testing.T) {
		neoInv := e.NewInvoker(e.NativeHash(t, nativenames.Neo), e.Committee)
		neoInv.InvokeFail(t, "only GAS can be accepted for deposit", "transfer",
			e.CommitteeHash, c.Hash, int64(1), nil)
	})
}

func TestEscrow_Withdraw(t *testing.T) {
	e, c := newEscrowInvoker(t)

	acc := e.NewAccount(t)
	gasInv := e.NewInvoker(e.NativeHash(t, nativenames.Gas), acc)

	const amount = 2 * gasDecimals
	gasInv.Invoke(t, true, "transfer", acc.ScriptHash(), c.Hash, int64(amount), nil)

	accInv := e.NewInvoker(c.Hash, acc)
	accInv.Invoke(t, stackitem.Null{}, "withdraw", acc.ScriptHash(), int64(gasDecimals))

	c.Invoke(t, amount-gasDecimals, "balanceOf", acc.ScriptHash())
	c.Invoke(t, amount-gasDecimals, "totalSupply")

	t.Run("more than balance", func(t *testing.T) {
		accInv.InvokeFail(t, "withdraw: insufficient balance", "withdraw",
			acc.ScriptHash(), int64(amount))
	})
	t.Run("non positive amount", func(t *testing.T) {
		accInv.InvokeFail(t, "withdraw: non positive amount", "withdraw",
			acc.ScriptHash(), int64(0))
	})
	t.Run("not witnessed", func(t *testing.T) {
		other := e.NewAccount(t)
		e.NewInvoker(c.Hash, other).InvokeFail(t, "you should be the owner of the wallet",
			"withdraw", acc.ScriptHash(), int64(1))
	})
}

func TestEscrow_BountyContractBinding(t *testing.T) {
	e, c := newEscrowInvoker(t)

	acc := e.NewAccount(t)
	purpose := bountyPurpose(1)

	t.Run("custody before binding", func(t *testing.T) {
		c.InvokeFail(t, "bounty contract is not set", "accept", acc.ScriptHash(), purpose, int64(1))
		c.InvokeFail(t, "bounty contract is not set", "release", purpose, acc.ScriptHash(), int64(1))
	})

	t.Run("binding by non-owner", func(t *testing.T) {
		e.NewInvoker(c.Hash, acc).InvokeFail(t, "owner witness check failed",
			"setBountyContract", acc.ScriptHash())
	})

	c.Invoke(t, stackitem.Null{}, "setBountyContract", acc.ScriptHash())

	t.Run("rebinding", func(t *testing.T) {
		c.InvokeFail(t, "bounty contract already set", "setBountyContract", acc.ScriptHash())
	})

	t.Run("custody by non-bounty caller", func(t *testing.T) {
		c.InvokeFail(t, "caller is not the bounty contract", "accept",
			acc.ScriptHash(), purpose, int64(1))
		c.InvokeFail(t, "caller is not the bounty contract", "release",
			purpose, acc.ScriptHash(), int64(1))
	})
}

// The sum of free and locked balances never changes while value moves
// between accounts and purposes, only deposits and withdrawals move it.
func TestEscrow_Conservation(t *testing.T) {
	s := newQuintySuite(t)

	creator := s.newDepositedAccount(t, 2*gasDecimals)
	solver := s.newDepositedAccount(t, 1*gasDecimals)
	s.escrow.Invoke(t, 3*gasDecimals, "totalSupply")

	const amount = 1 * gasDecimals
	id := s.createBounty(t, creator, amount)
	s.escrow.Invoke(t, 3*gasDecimals, "totalSupply")
	s.escrow.Invoke(t, amount, "lockedOf", bountyPurpose(id))
	s.escrow.Invoke(t, gasDecimals, "balanceOf", creator.ScriptHash())

	solution := []byte("conservation check")
	index := s.submitSolution(t, solver, id, solution, amount)
	s.escrow.Invoke(t, 3*gasDecimals, "totalSupply")
	s.escrow.Invoke(t, amount/10, "lockedOf", depositPurpose(id, index))

	inv := s.e.NewInvoker(s.bountyHash, creator)
	inv.Invoke(t, stackitem.Null{}, "selectWinners", id,
		[]any{solver.ScriptHash()}, []any{index})

	s.e.NewInvoker(s.bountyHash, solver).Invoke(t, stackitem.Null{},
		"revealSolution", id, index, solution)

	s.escrow.Invoke(t, 3*gasDecimals, "totalSupply")
	s.escrow.Invoke(t, 0, "lockedOf", bountyPurpose(id))
	s.escrow.Invoke(t, 0, "lockedOf", depositPurpose(id, index))
	s.escrow.Invoke(t, gasDecimals+amount+amount/10, "balanceOf", solver.ScriptHash())
}
