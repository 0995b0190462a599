package vesting

import (
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// State is attached inline to the output holding a locked balance.
// Every field except ClaimedQuantity is fixed when the balance is locked.
type State struct {
	// Party that locked the balance, and may reclaim it before vesting starts.
	Owner abi.KeyHash
	// Party the balance vests to.
	Beneficiary abi.KeyHash

	// Linear release from StartTime to EndDate, with nothing claimable before CliffDate.
	// StartTime <= CliffDate <= EndDate is expected of whoever locks the balance, but is not
	// checked when spending.
	StartTime abi.POSIXTime
	CliffDate abi.POSIXTime
	EndDate   abi.POSIXTime

	TotalVestingQuantity abi.TokenAmount
	// Sum of all successful claims so far.
	ClaimedQuantity abi.TokenAmount
}

// ConstructState returns the state for a newly locked balance, with nothing claimed.
func ConstructState(owner, beneficiary abi.KeyHash, start, cliff, end abi.POSIXTime, total abi.TokenAmount) *State {
	return &State{
		Owner:                owner,
		Beneficiary:          beneficiary,
		StartTime:            start,
		CliffDate:            cliff,
		EndDate:              end,
		TotalVestingQuantity: total,
		ClaimedQuantity:      big.Zero(),
	}
}

// VestedAmount returns the quantity unlocked by the schedule at an instant, whether or not
// it has been claimed.
func (st *State) VestedAmount(now abi.POSIXTime) abi.TokenAmount {
	if now < st.CliffDate {
		return big.Zero()
	}
	if now >= st.EndDate {
		return st.TotalVestingQuantity
	}

	start := big.NewInt(int64(st.StartTime))
	duration := big.Sub(big.NewInt(int64(st.EndDate)), start)
	elapsed := big.Sub(big.NewInt(int64(now)), start)
	if duration.GreaterThan(big.Zero()) {
		// (totalVestingQuantity * elapsed) / duration
		// Division must be done last to avoid precision loss with integer values
		return big.Div(big.Mul(st.TotalVestingQuantity, elapsed), duration)
	}

	// An empty or inverted schedule vests everything at once from the start time.
	if now >= st.StartTime {
		return st.TotalVestingQuantity
	}
	return big.Zero()
}

// AvailableToClaim is the vested quantity not yet claimed.
func (st *State) AvailableToClaim(now abi.POSIXTime) abi.TokenAmount {
	return big.Sub(st.VestedAmount(now), st.ClaimedQuantity)
}

// Remaining is the quantity that should still be locked.
func (st *State) Remaining() abi.TokenAmount {
	return big.Sub(st.TotalVestingQuantity, st.ClaimedQuantity)
}

// WithClaim returns the state a claim of amount must leave on the continuing output.
// The receiver is not modified.
func (st *State) WithClaim(amount abi.TokenAmount) *State {
	next := *st
	next.ClaimedQuantity = big.Add(st.ClaimedQuantity, amount)
	return &next
}

// immutableFieldsEqual compares every field but ClaimedQuantity.
func (st *State) immutableFieldsEqual(o *State) bool {
	return st.Owner == o.Owner &&
		st.Beneficiary == o.Beneficiary &&
		st.StartTime == o.StartTime &&
		st.CliffDate == o.CliffDate &&
		st.EndDate == o.EndDate &&
		st.TotalVestingQuantity.Equals(o.TotalVestingQuantity)
}
