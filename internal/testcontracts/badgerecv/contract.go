package badgerecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Receipt records one badge delivery observed via onNEP11Payment.
type Receipt struct {
	From    interop.Hash160
	BadgeID []byte
	Data    any
}

const (
	countKey = "count"
	lastKey  = "last"
)

func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data any) {
	if amount != 1 {
		panic("badges are indivisible")
	}

	ctx := storage.GetContext()

	var count int
	if v := storage.Get(ctx, countKey); v != nil {
		count = v.(int)
	}
	storage.Put(ctx, countKey, count+1)

	storage.Put(ctx, lastKey, std.Serialize(Receipt{
		From:    from,
		BadgeID: tokenID,
		Data:    data,
	}))
}

// Received returns the number of badges delivered to the contract.
func Received() int {
	val := storage.Get(storage.GetReadOnlyContext(), countKey)
	if val == nil {
		return 0
	}
	return val.(int)
}

// Last returns the most recent delivery.
func Last() Receipt {
	val := storage.Get(storage.GetReadOnlyContext(), lastKey)
	if val == nil {
		return Receipt{}
	}
	return std.Deserialize(val.([]byte)).(Receipt)
}

func Verify() bool {
	return true
}
