package vesting

import (
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
)

type StateSummary struct {
	Remaining    abi.TokenAmount
	FullyClaimed bool
}

// Checks internal invariants of vesting state.
// The schedule ordering is reported here even though spending never checks it: a state that
// fails it was locked by a misbehaving wallet.
func CheckStateInvariants(st *State) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	acc.Require(!st.Owner.IsZero(), "owner key hash is empty")
	acc.Require(!st.Beneficiary.IsZero(), "beneficiary key hash is empty")

	acc.Require(st.StartTime <= st.CliffDate, "start time %d after cliff %d", st.StartTime, st.CliffDate)
	acc.Require(st.CliffDate <= st.EndDate, "cliff %d after end date %d", st.CliffDate, st.EndDate)

	if st.TotalVestingQuantity.Nil() || st.ClaimedQuantity.Nil() {
		acc.Add("vesting quantities are not initialized")
		return &StateSummary{Remaining: big.Zero()}, acc
	}
	acc.Require(st.TotalVestingQuantity.GreaterThanEqual(big.Zero()), "negative total vesting quantity %v", st.TotalVestingQuantity)
	acc.Require(st.ClaimedQuantity.GreaterThanEqual(big.Zero()), "negative claimed quantity %v", st.ClaimedQuantity)
	acc.Require(st.ClaimedQuantity.LessThanEqual(st.TotalVestingQuantity),
		"claimed quantity %v exceeds total %v", st.ClaimedQuantity, st.TotalVestingQuantity)

	remaining := st.Remaining()
	return &StateSummary{
		Remaining:    remaining,
		FullyClaimed: remaining.Sign() == 0,
	}, acc
}
