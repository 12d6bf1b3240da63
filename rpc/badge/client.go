// Package badge contains RPC wrappers for the Quinty Badge contract.
package badge

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call safe contract methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// ContractReader provides safe (read-only) methods of the Quinty Badge
// contract.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// NewReader creates an instance of ContractReader using the given contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// TotalSupply returns the overall number of badges ever minted.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// BalanceOf returns the number of badges owned by the given account.
func (c *ContractReader) BalanceOf(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", owner))
}

// OwnerOf returns the owner of the badge with the given identifier.
func (c *ContractReader) OwnerOf(badgeID int64) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ownerOf", big.NewInt(badgeID).Bytes()))
}

// GetUserBadges returns identifiers of all badges owned by the given
// account.
func (c *ContractReader) GetUserBadges(owner util.Uint160) ([]int64, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getUserBadges", owner))
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i := range items {
		v, err := items[i].TryInteger()
		if err != nil {
			return nil, fmt.Errorf("badge id %d: %w", i, err)
		}
		if !v.IsInt64() {
			return nil, fmt.Errorf("badge id %d out of int64 range", i)
		}
		ids[i] = v.Int64()
	}

	return ids, nil
}

// Properties returns the kind and metadata URI of the badge with the given
// identifier.
func (c *ContractReader) Properties(badgeID int64) (map[string]string, error) {
	m, err := unwrap.Map(c.invoker.Call(c.hash, "properties", big.NewInt(badgeID).Bytes()))
	if err != nil {
		return nil, err
	}

	props := make(map[string]string, len(m.Value().([]stackitem.MapElement)))
	for _, e := range m.Value().([]stackitem.MapElement) {
		k, err := e.Key.TryBytes()
		if err != nil {
			return nil, fmt.Errorf("property key: %w", err)
		}
		v, err := e.Value.TryBytes()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", string(k), err)
		}
		props[string(k)] = string(v)
	}

	return props, nil
}
