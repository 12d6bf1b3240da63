// Package bounty contains RPC wrappers for the Quinty Bounty contract.
package bounty

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call safe contract methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// ContractReader provides safe (read-only) methods of the Quinty Bounty
// contract.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Bounty is a client-side representation of the bounty record.
type Bounty struct {
	ID            int64
	Creator       util.Uint160
	Description   string
	Amount        *big.Int
	Deadline      int64
	Restricted    bool
	AllowList     []util.Uint160
	SlashPercent  int64
	Status        int64
	Winners       []util.Uint160
	WinnerIndexes []int64
	RevealedCount int64
}

// Submission is a client-side representation of the submission record.
type Submission struct {
	BountyID   int64
	Submitter  util.Uint160
	Commitment []byte
	AuxData    [][]byte
	Deposit    *big.Int
	Revealed   bool
	Solution   []byte
}

// NewReader creates an instance of ContractReader using the given contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// Commitment computes the submission commitment of the given solution
// content: its SHA-256 digest.
func Commitment(solution []byte) []byte {
	h := sha256.Sum256(solution)
	return h[:]
}

// ContentAddress renders the commitment of the given solution content as a
// base58 content address. It is the conventional off-chain reference format
// for hidden solutions.
func ContentAddress(solution []byte) string {
	return base58.Encode(Commitment(solution))
}

// BountyCount returns the number of bounties ever created.
func (c *ContractReader) BountyCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "bountyCount"))
}

// SubmissionCount returns the number of submissions of the given bounty.
func (c *ContractReader) SubmissionCount(bountyID int64) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "submissionCount", bountyID))
}

// GetBountyData returns the bounty record by its identifier.
func (c *ContractReader) GetBountyData(id int64) (*Bounty, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getBountyData", id))
	if err != nil {
		return nil, err
	}

	return itemsToBounty(items)
}

// GetSubmission returns the submission record by bounty identifier and
// submission index.
func (c *ContractReader) GetSubmission(bountyID, index int64) (*Submission, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getSubmission", bountyID, index))
	if err != nil {
		return nil, err
	}

	return itemsToSubmission(items)
}

func itemsToBounty(items []stackitem.Item) (*Bounty, error) {
	if len(items) != 12 {
		return nil, fmt.Errorf("unexpected bounty field count %d", len(items))
	}

	var (
		b   Bounty
		err error
	)
	if b.ID, err = itemToInt64(items[0]); err != nil {
		return nil, fmt.Errorf("field ID: %w", err)
	}
	if b.Creator, err = itemToUint160(items[1]); err != nil {
		return nil, fmt.Errorf("field Creator: %w", err)
	}
	if b.Description, err = itemToString(items[2]); err != nil {
		return nil, fmt.Errorf("field Description: %w", err)
	}
	if b.Amount, err = items[3].TryInteger(); err != nil {
		return nil, fmt.Errorf("field Amount: %w", err)
	}
	if b.Deadline, err = itemToInt64(items[4]); err != nil {
		return nil, fmt.Errorf("field Deadline: %w", err)
	}
	if b.Restricted, err = items[5].TryBool(); err != nil {
		return nil, fmt.Errorf("field Restricted: %w", err)
	}
	if b.AllowList, err = itemToUint160Slice(items[6]); err != nil {
		return nil, fmt.Errorf("field AllowList: %w", err)
	}
	if b.SlashPercent, err = itemToInt64(items[7]); err != nil {
		return nil, fmt.Errorf("field SlashPercent: %w", err)
	}
	if b.Status, err = itemToInt64(items[8]); err != nil {
		return nil, fmt.Errorf("field Status: %w", err)
	}
	if b.Winners, err = itemToUint160Slice(items[9]); err != nil {
		return nil, fmt.Errorf("field Winners: %w", err)
	}
	if b.WinnerIndexes, err = itemToInt64Slice(items[10]); err != nil {
		return nil, fmt.Errorf("field WinnerIndexes: %w", err)
	}
	if b.RevealedCount, err = itemToInt64(items[11]); err != nil {
		return nil, fmt.Errorf("field RevealedCount: %w", err)
	}

	return &b, nil
}

func itemsToSubmission(items []stackitem.Item) (*Submission, error) {
	if len(items) != 7 {
		return nil, fmt.Errorf("unexpected submission field count %d", len(items))
	}

	var (
		s   Submission
		err error
	)
	if s.BountyID, err = itemToInt64(items[0]); err != nil {
		return nil, fmt.Errorf("field BountyID: %w", err)
	}
	if s.Submitter, err = itemToUint160(items[1]); err != nil {
		return nil, fmt.Errorf("field Submitter: %w", err)
	}
	if s.Commitment, err = items[2].TryBytes(); err != nil {
		return nil, fmt.Errorf("field Commitment: %w", err)
	}
	if s.AuxData, err = itemToBytesSlice(items[3]); err != nil {
		return nil, fmt.Errorf("field AuxData: %w", err)
	}
	if s.Deposit, err = items[4].TryInteger(); err != nil {
		return nil, fmt.Errorf("field Deposit: %w", err)
	}
	if s.Revealed, err = items[5].TryBool(); err != nil {
		return nil, fmt.Errorf("field Revealed: %w", err)
	}
	if s.Solution, err = items[6].TryBytes(); err != nil {
		return nil, fmt.Errorf("field Solution: %w", err)
	}

	return &s, nil
}

func itemToInt64(item stackitem.Item) (int64, error) {
	i, err := item.TryInteger()
	if err != nil {
		return 0, err
	}
	if !i.IsInt64() {
		return 0, fmt.Errorf("value %s out of int64 range", i)
	}
	return i.Int64(), nil
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToUint160Slice(item stackitem.Item) ([]util.Uint160, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		if _, isNull := item.(stackitem.Null); isNull {
			return nil, nil
		}
		return nil, fmt.Errorf("not an array")
	}

	res := make([]util.Uint160, len(arr))
	for i := range arr {
		var err error
		if res[i], err = itemToUint160(arr[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func itemToInt64Slice(item stackitem.Item) ([]int64, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		if _, isNull := item.(stackitem.Null); isNull {
			return nil, nil
		}
		return nil, fmt.Errorf("not an array")
	}

	res := make([]int64, len(arr))
	for i := range arr {
		var err error
		if res[i], err = itemToInt64(arr[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func itemToBytesSlice(item stackitem.Item) ([][]byte, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		if _, isNull := item.(stackitem.Null); isNull {
			return nil, nil
		}
		return nil, fmt.Errorf("not an array")
	}

	res := make([][]byte, len(arr))
	for i := range arr {
		var err error
		if res[i], err = arr[i].TryBytes(); err != nil {
			return nil, err
		}
	}
	return res, nil
}
