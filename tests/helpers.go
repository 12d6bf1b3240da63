package tests

import (
	"crypto/sha256"
	"path"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	escrowPath     = "../contracts/escrow"
	bountyPath     = "../contracts/bounty"
	reputationPath = "../contracts/reputation"
	badgePath      = "../contracts/badge"
	badgeRecvPath  = "../internal/testcontracts/badgerecv"
)

// gasDecimals is the multiplier of one whole GAS.
const gasDecimals = 1_0000_0000

// quintySuite is a fully deployed and linked Quinty contract set on a fresh
// single-validator chain. The committee account owns the Escrow, Bounty and
// Reputation contracts and administers the Badge contract.
type quintySuite struct {
	e *neotest.Executor

	escrowHash     util.Uint160
	bountyHash     util.Uint160
	reputationHash util.Uint160
	badgeHash      util.Uint160

	escrow     *neotest.ContractInvoker
	bounty     *neotest.ContractInvoker
	reputation *neotest.ContractInvoker
	badge      *neotest.ContractInvoker
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

func newQuintySuite(t *testing.T) *quintySuite {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)

	escrowCtr := compileContract(t, e, escrowPath)
	bountyCtr := compileContract(t, e, bountyPath)
	reputationCtr := compileContract(t, e, reputationPath)
	badgeCtr := compileContract(t, e, badgePath)

	e.DeployContract(t, escrowCtr, []any{e.CommitteeHash})
	e.DeployContract(t, reputationCtr, []any{e.CommitteeHash})
	e.DeployContract(t, badgeCtr, []any{e.CommitteeHash, "ipfs://"})
	e.DeployContract(t, bountyCtr, []any{e.CommitteeHash})

	s := &quintySuite{
		e:              e,
		escrowHash:     escrowCtr.Hash,
		bountyHash:     bountyCtr.Hash,
		reputationHash: reputationCtr.Hash,
		badgeHash:      badgeCtr.Hash,
		escrow:         e.CommitteeInvoker(escrowCtr.Hash),
		bounty:         e.CommitteeInvoker(bountyCtr.Hash),
		reputation:     e.CommitteeInvoker(reputationCtr.Hash),
		badge:          e.CommitteeInvoker(badgeCtr.Hash),
	}

	s.escrow.Invoke(t, stackitem.Null{}, "setBountyContract", s.bountyHash)
	s.bounty.Invoke(t, stackitem.Null{}, "setAddresses", s.escrowHash, s.reputationHash, s.badgeHash)
	s.reputation.Invoke(t, stackitem.Null{}, "transferOwnership", s.bountyHash)
	s.badge.Invoke(t, stackitem.Null{}, "authorizeMinter", s.bountyHash)

	return s
}

// newDepositedAccount creates a fresh account and tops up its escrow balance
// with the given amount of GAS.
func (s *quintySuite) newDepositedAccount(t *testing.T, amount int64) neotest.Signer {
	acc := s.e.NewAccount(t)
	s.depositGAS(t, acc, amount)
	return acc
}

func (s *quintySuite) depositGAS(t *testing.T, from neotest.Signer, amount int64) {
	gasHash := s.e.NativeHash(t, nativenames.Gas)
	s.e.NewInvoker(gasHash, from).Invoke(t, true, "transfer",
		from.ScriptHash(), s.escrowHash, amount, nil)
}

// futureDeadline returns a millisecond timestamp comfortably ahead of the
// chain time.
func (s *quintySuite) futureDeadline(t *testing.T) int64 {
	return int64(s.e.TopBlock(t).Timestamp) + 100_000
}

// passDeadline moves the chain time to the deadline of the given bounty by
// adding a block with an explicit timestamp.
func (s *quintySuite) passDeadline(t *testing.T, bountyID int64) {
	deadline := itemInt(t, invokeStruct(t, s.bounty, "getBountyData", bountyID)[4])

	b := s.e.NewUnsignedBlock(t)
	b.Timestamp = uint64(deadline)
	require.NoError(t, s.e.Chain.AddBlock(s.e.SignBlock(b)))
}

// createBounty creates an unrestricted bounty funded from the creator's
// escrow balance and returns its identifier.
func (s *quintySuite) createBounty(t *testing.T, creator neotest.Signer, amount int64) int64 {
	inv := s.e.NewInvoker(s.bountyHash, creator)
	id := int64(invokeInt(t, inv, "createBounty", creator.ScriptHash(), "bounty "+uuid.NewString(),
		s.futureDeadline(t), false, []any{}, 0, nil, amount))
	return id
}

// submitSolution commits the given solution content to the bounty with the
// exact required deposit and returns the submission index.
func (s *quintySuite) submitSolution(t *testing.T, submitter neotest.Signer, bountyID int64, solution []byte, amount int64) int64 {
	inv := s.e.NewInvoker(s.bountyHash, submitter)
	index := int64(invokeInt(t, inv, "submitSolution", submitter.ScriptHash(), bountyID,
		commitment(solution), []any{}, amount/10))
	return index
}

// invokeInt invokes the method and returns its integer result.
func invokeInt(t *testing.T, inv *neotest.ContractInvoker, method string, args ...any) int {
	script, err := smartcontract.CreateCallScript(inv.Hash, method, args...)
	require.NoError(t, err)
	st, err := inv.TestInvokeScript(t, script, inv.Signers)
	require.NoError(t, err)
	require.Equal(t, 1, st.Len())
	v, err := st.Pop().Item().TryInteger()
	require.NoError(t, err)

	inv.Invoke(t, v.Int64(), method, args...)
	return int(v.Int64())
}

// invokeStruct invokes a method returning a structure and gives back its
// fields.
func invokeStruct(t *testing.T, inv *neotest.ContractInvoker, method string, args ...any) []stackitem.Item {
	st, err := inv.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, st.Len())

	fields, ok := st.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	return fields
}

func itemInt(t *testing.T, item stackitem.Item) int64 {
	v, err := item.TryInteger()
	require.NoError(t, err)
	return v.Int64()
}

func itemBool(t *testing.T, item stackitem.Item) bool {
	v, err := item.TryBool()
	require.NoError(t, err)
	return v
}

func itemBytes(t *testing.T, item stackitem.Item) []byte {
	v, err := item.TryBytes()
	require.NoError(t, err)
	return v
}

func commitment(solution []byte) []byte {
	h := sha256.Sum256(solution)
	return h[:]
}

// bountyPurpose mirrors the reward purpose derivation of the bounty
// contract.
func bountyPurpose(id int64) []byte {
	h := sha256.Sum256([]byte("b" + strconv.FormatInt(id, 10)))
	return h[:]
}

// depositPurpose mirrors the deposit purpose derivation of the bounty
// contract.
func depositPurpose(id, index int64) []byte {
	h := sha256.Sum256([]byte("d" + strconv.FormatInt(id, 10) + ":" + strconv.FormatInt(index, 10)))
	return h[:]
}
