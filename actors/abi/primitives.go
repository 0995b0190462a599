package abi

import (
	"strconv"

	"github.com/filecoin-project/go-state-types/big"
)

// The abi package contains definitions of all types that cross the boundary between the host
// ledger and validator code.
//
// Primitive types include numerics and opaque identifiers.

// POSIXTime is an instant in milliseconds since the Unix epoch. It is the only notion of time
// a validator observes, derived from the validity interval of the transaction being checked.
type POSIXTime int64

func (t POSIXTime) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// MethodNum selects an action of a validator. Method numbers act as the tag of the action
// union carried by a Redeemer: once assigned, a number must never be reused for a different
// action.
type MethodNum uint64

func (e MethodNum) String() string {
	return strconv.FormatInt(int64(e), 10)
}

// TokenAmount is a quantity of a single asset.
//
// BigInt types are aliases rather than new types because the latter introduce incredible amounts of noise converting to
// and from types in order to manipulate values. We give up some type safety for ergonomics.
type TokenAmount = big.Int

func NewTokenAmount(t int64) TokenAmount {
	return big.NewInt(t)
}
