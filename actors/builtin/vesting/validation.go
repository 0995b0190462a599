package vesting

import (
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

// ValidateClaim checks that tx may withdraw amount to the beneficiary from the locked output
// ownRef, leaving the rest locked under an updated state.
// Checks run in a fixed order and the first failure is returned, coded with its exit code.
func (st *State) ValidateClaim(tx *abi.TxInfo, ownRef abi.OutputRef, asset abi.AssetID, amount abi.TokenAmount) error {
	now, ok := builtin.LowerBoundTime(tx)
	if !ok {
		return ErrNonFiniteLowerBound.Wrapf("validity range %s must start at a finite time", tx.ValidRange)
	}
	if amount.Nil() || amount.LessThanEqual(big.Zero()) {
		return ErrNonPositiveClaimAmount.Wrapf("claim amount %v must be positive", amount)
	}
	if !builtin.SignedBy(tx, st.Beneficiary) {
		return ErrMissingBeneficiarySignature.Wrapf("transaction not signed by beneficiary %s", st.Beneficiary)
	}
	if now < st.CliffDate {
		return ErrBeforeCliff.Wrapf("time %d is before cliff %d", now, st.CliffDate)
	}

	available := st.AvailableToClaim(now)
	if amount.GreaterThan(available) {
		return ErrExceedsAvailableVested.Wrapf("claim %v exceeds available %v (vested %v, claimed %v) at %d",
			amount, available, st.VestedAmount(now), st.ClaimedQuantity, now)
	}

	ownInput, found := builtin.FindOwnInput(tx, ownRef)
	if !found {
		return ErrOwnInputNotFound.Wrapf("no input spends %s", ownRef)
	}

	paid := builtin.ValueSentTo(tx, st.Beneficiary.Address(), asset)
	if paid.LessThan(amount) {
		return ErrUnderpaidBeneficiary.Wrapf("beneficiary receives %v of %s, claimed %v", paid, asset, amount)
	}

	cont, found := builtin.FindContinuingOutput(tx, ownRef)
	if !found {
		return ErrMissingContinuation.Wrapf("no output returns to %s", ownInput.Output.Address)
	}

	inputQty := ownInput.Output.Value.AmountOf(asset)
	outputQty := cont.Value.AmountOf(asset)
	minRemaining := big.Sub(inputQty, amount)
	if outputQty.LessThan(minRemaining) {
		return ErrInsufficientRemainingQuantity.Wrapf("continuing output holds %v of %s, at least %v must remain locked",
			outputQty, asset, minRemaining)
	}

	if cont.Datum.Kind != abi.InlineDatum {
		return ErrWrongStateRepresentation.Wrapf("continuing output carries %s datum, expected inline state", cont.Datum.Kind)
	}
	var next State
	if err := serde.Deserialize(cont.Datum.Inline, &next); err != nil {
		return ErrWrongStateRepresentation.Wrapf("continuing datum is not a vesting state: %w", err)
	}

	if !st.immutableFieldsEqual(&next) {
		return ErrImmutableFieldMismatch.Wrapf("continuing state changes fixed fields: %+v -> %+v", *st, next)
	}
	expectedClaimed := big.Add(st.ClaimedQuantity, amount)
	if !next.ClaimedQuantity.Equals(expectedClaimed) {
		return ErrClaimedQuantityMismatch.Wrapf("continuing state claims %v, expected %v",
			next.ClaimedQuantity, expectedClaimed)
	}
	return nil
}

// ValidateRefund checks that tx returns the whole locked balance of ownRef to the owner before
// vesting starts. No continuing output is required.
// Unlike claims, the spent quantity must match the outstanding balance exactly.
func (st *State) ValidateRefund(tx *abi.TxInfo, ownRef abi.OutputRef, asset abi.AssetID) error {
	now, ok := builtin.LowerBoundTime(tx)
	if !ok {
		return ErrNonFiniteLowerBound.Wrapf("validity range %s must start at a finite time", tx.ValidRange)
	}
	if !builtin.SignedBy(tx, st.Owner) {
		return ErrMissingOwnerSignature.Wrapf("transaction not signed by owner %s", st.Owner)
	}
	if now >= st.StartTime {
		return ErrNotBeforeStart.Wrapf("time %d is not before start %d", now, st.StartTime)
	}

	ownInput, found := builtin.FindOwnInput(tx, ownRef)
	if !found {
		return ErrOwnInputNotFound.Wrapf("no input spends %s", ownRef)
	}

	expected := st.Remaining()
	inputQty := ownInput.Output.Value.AmountOf(asset)
	if !inputQty.Equals(expected) {
		return ErrWrongRefundInputQuantity.Wrapf("spent output holds %v of %s, expected exactly %v", inputQty, asset, expected)
	}

	paid := builtin.ValueSentTo(tx, st.Owner.Address(), asset)
	if paid.LessThan(expected) {
		return ErrUnderpaidOwner.Wrapf("owner receives %v of %s, expected at least %v", paid, asset, expected)
	}
	return nil
}
