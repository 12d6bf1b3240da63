package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	kindBountyCreator = 0
	kindBountySolver  = 1
	kindTeamMember    = 2
)

// newBadgeInvoker deploys the badge contract alone, administered by the
// committee.
func newBadgeInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)

	c := neotest.CompileFile(t, e.CommitteeHash, badgePath, path.Join(badgePath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, "ipfs://"})
	return e, e.CommitteeInvoker(c.Hash)
}

func TestBadge_TokenInfo(t *testing.T) {
	_, c := newBadgeInvoker(t)

	c.Invoke(t, "QBDG", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
}

func TestBadge_Mint(t *testing.T) {
	e, c := newBadgeInvoker(t)

	user := e.NewAccount(t)

	c.Invoke(t, 1, "mintBadge", user.ScriptHash(), kindTeamMember, "team/member-1")

	c.Invoke(t, 1, "totalSupply")
	c.Invoke(t, 1, "balanceOf", user.ScriptHash())
	c.Invoke(t, user.ScriptHash().BytesBE(), "ownerOf", []byte{1})

	t.Run("properties", func(t *testing.T) {
		st, err := c.TestInvoke(t, "properties", []byte{1})
		require.NoError(t, err)

		m, ok := st.Pop().Item().(*stackitem.Map)
		require.True(t, ok)

		props := make(map[string]string)
		for _, el := range m.Value().([]stackitem.MapElement) {
			props[string(itemBytes(t, el.Key))] = string(itemBytes(t, el.Value))
		}
		require.Equal(t, map[string]string{
			"name": "Team Member",
			"kind": "2",
			"uri":  "ipfs://team/member-1",
		}, props)
	})

	t.Run("badge list", func(t *testing.T) {
		c.Invoke(t, 2, "mintBadge", user.ScriptHash(), kindBountySolver, "solver-1")

		st, err := c.TestInvoke(t, "getUserBadges", user.ScriptHash())
		require.NoError(t, err)

		ids, ok := st.Pop().Item().Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, ids, 2)
		require.EqualValues(t, 1, itemInt(t, ids[0]))
		require.EqualValues(t, 2, itemInt(t, ids[1]))
	})

	t.Run("unknown badge", func(t *testing.T) {
		c.InvokeFail(t, "badge not found", "ownerOf", []byte{100})
		c.InvokeFail(t, "badge not found", "properties", []byte{100})
	})

	t.Run("unknown kind", func(t *testing.T) {
		c.InvokeFail(t, "unknown badge kind", "mintBadge", user.ScriptHash(), 3, "x")
	})

	t.Run("unauthorized mint", func(t *testing.T) {
		e.NewInvoker(c.Hash, user).InvokeFail(t, "not authorized to mint",
			"mintBadge", user.ScriptHash(), kindBountyCreator, "x")
	})
}

func TestBadge_Soulbound(t *testing.T) {
	e, c := newBadgeInvoker(t)

	user := e.NewAccount(t)

	c.Invoke(t, 1, "mintBadge", user.ScriptHash(), kindBountyCreator, "creator-1")

	t.Run("transfer by owner", func(t *testing.T) {
		recipient := e.NewAccount(t)
		e.NewInvoker(c.Hash, user).InvokeFail(t, "soulbound: transfer not allowed",
			"transfer", recipient.ScriptHash(), []byte{1}, nil)
		c.Invoke(t, user.ScriptHash().BytesBE(), "ownerOf", []byte{1})
	})

	t.Run("transfer by admin", func(t *testing.T) {
		recipient := e.NewAccount(t)
		c.InvokeFail(t, "soulbound: transfer not allowed",
			"transfer", recipient.ScriptHash(), []byte{1}, nil)
		c.Invoke(t, user.ScriptHash().BytesBE(), "ownerOf", []byte{1})
	})
}

func TestBadge_AuthorizeMinter(t *testing.T) {
	e, c := newBadgeInvoker(t)

	user := e.NewAccount(t)
	minter := e.NewAccount(t)

	t.Run("by non-admin", func(t *testing.T) {
		e.NewInvoker(c.Hash, minter).InvokeFail(t, "owner witness check failed",
			"authorizeMinter", minter.ScriptHash())
	})

	// granting mint rights to a plain account has no effect on its witness
	// checks, rights are keyed by the calling script hash
	c.Invoke(t, stackitem.Null{}, "authorizeMinter", minter.ScriptHash())
	e.NewInvoker(c.Hash, minter).InvokeFail(t, "not authorized to mint",
		"mintBadge", user.ScriptHash(), kindTeamMember, "x")
}

// A contract recipient of a badge gets an onNEP11Payment callback.
func TestBadge_ContractRecipient(t *testing.T) {
	e, c := newBadgeInvoker(t)

	recv := neotest.CompileFile(t, e.CommitteeHash, badgeRecvPath, path.Join(badgeRecvPath, "config.yml"))
	e.DeployContract(t, recv, nil)

	c.Invoke(t, 1, "mintBadge", recv.Hash, kindTeamMember, "team/contract")
	c.Invoke(t, recv.Hash.BytesBE(), "ownerOf", []byte{1})

	recvInv := e.CommitteeInvoker(recv.Hash)
	recvInv.Invoke(t, 1, "received")

	c.Invoke(t, 2, "mintBadge", recv.Hash, kindBountySolver, "solver/contract")
	recvInv.Invoke(t, 2, "received")

	last := invokeStruct(t, recvInv, "last")
	require.Equal(t, []byte{2}, itemBytes(t, last[1]))
}
