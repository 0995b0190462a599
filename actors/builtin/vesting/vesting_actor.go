package vesting

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

// Exit codes of the vesting validator. Each names the first check a rejected spend failed.
const (
	ErrMissingState = exitcode.FirstActorSpecificExitCode + iota
	ErrInvalidPurpose
	ErrNonFiniteLowerBound
	ErrNonPositiveClaimAmount
	ErrMissingBeneficiarySignature
	ErrBeforeCliff
	ErrExceedsAvailableVested
	ErrOwnInputNotFound
	ErrUnderpaidBeneficiary
	ErrMissingContinuation
	ErrInsufficientRemainingQuantity
	ErrWrongStateRepresentation
	ErrImmutableFieldMismatch
	ErrClaimedQuantityMismatch
	ErrMissingOwnerSignature
	ErrNotBeforeStart
	ErrWrongRefundInputQuantity
	ErrUnderpaidOwner
)

var exitCodeNames = map[exitcode.ExitCode]string{
	ErrMissingState:                  "MissingState",
	ErrInvalidPurpose:                "InvalidPurpose",
	ErrNonFiniteLowerBound:           "NonFiniteLowerBound",
	ErrNonPositiveClaimAmount:        "NonPositiveClaimAmount",
	ErrMissingBeneficiarySignature:   "MissingBeneficiarySignature",
	ErrBeforeCliff:                   "BeforeCliff",
	ErrExceedsAvailableVested:        "ExceedsAvailableVested",
	ErrOwnInputNotFound:              "OwnInputNotFound",
	ErrUnderpaidBeneficiary:          "UnderpaidBeneficiary",
	ErrMissingContinuation:           "MissingContinuation",
	ErrInsufficientRemainingQuantity: "InsufficientRemainingQuantity",
	ErrWrongStateRepresentation:      "WrongStateRepresentation",
	ErrImmutableFieldMismatch:        "ImmutableFieldMismatch",
	ErrClaimedQuantityMismatch:       "ClaimedQuantityMismatch",
	ErrMissingOwnerSignature:         "MissingOwnerSignature",
	ErrNotBeforeStart:                "NotBeforeStart",
	ErrWrongRefundInputQuantity:      "WrongRefundInputQuantity",
	ErrUnderpaidOwner:                "UnderpaidOwner",
}

// ExitCodeName returns the diagnostic label of an exit code.
func ExitCodeName(code exitcode.ExitCode) string {
	if name, ok := exitCodeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("ExitCode(%d)", int64(code))
}

// Actor is the vesting validator, parameterized by the single asset it governs.
type Actor struct {
	Asset abi.AssetID
}

func NewActor(asset abi.AssetID) Actor {
	return Actor{Asset: asset}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingActorCodeID
}

// Address is where balances governed by this validator are locked.
// It commits to both the validator code and the governed asset, so validators for different
// assets never share an address.
func (a Actor) Address() (addr.Address, error) {
	asset, err := serde.Serialize(&a.Asset)
	if err != nil {
		return addr.Undef, err
	}
	return addr.NewActorAddress(append(a.Code().Bytes(), asset...))
}

type ClaimParams struct {
	AmountToClaim abi.TokenAmount
}

// ClaimAction builds the redeemer requesting a claim of amount by the beneficiary.
func ClaimAction(amount abi.TokenAmount) *abi.Redeemer {
	return &abi.Redeemer{
		Method: builtin.MethodsVesting.Claim,
		Params: serde.MustSerialize(&ClaimParams{AmountToClaim: amount}),
	}
}

// RefundAction builds the redeemer requesting the owner's refund.
func RefundAction() *abi.Redeemer {
	return &abi.Redeemer{
		Method: builtin.MethodsVesting.Refund,
		Params: serde.MustSerialize(&abi.EmptyValue{}),
	}
}

// Spend is the validator entry point, invoked once for each locked output a transaction spends.
// It returns normally if the spend is allowed and aborts otherwise.
func (a Actor) Spend(rt runtime.Runtime, redeemer *abi.Redeemer) *abi.EmptyValue {
	purpose := rt.Purpose()
	if purpose.Kind != abi.PurposeSpend {
		rt.Abortf(ErrInvalidPurpose, "vesting validator cannot be invoked to %s", purpose.Kind)
	}
	builtin.RequireParam(rt, redeemer != nil, "missing redeemer")

	var st State
	if !rt.State(&st) {
		rt.Abortf(ErrMissingState, "spent output %s carries no vesting state", purpose.Ref)
	}
	tx := rt.TxInfo()

	switch redeemer.Method {
	case builtin.MethodsVesting.Claim:
		var params ClaimParams
		err := serde.Deserialize(redeemer.Params, &params)
		builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to decode claim params")

		err = st.ValidateClaim(tx, purpose.Ref, a.Asset, params.AmountToClaim)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "claim of %v from %s rejected", params.AmountToClaim, purpose.Ref)
		rt.Log(builtin.GetValidatorLogLevel(a, rtt.INFO), "beneficiary %s claimed %v of %s from %s", st.Beneficiary, params.AmountToClaim, a.Asset, purpose.Ref)

	case builtin.MethodsVesting.Refund:
		var params abi.EmptyValue
		err := serde.Deserialize(redeemer.Params, &params)
		builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to decode refund params")

		err = st.ValidateRefund(tx, purpose.Ref, a.Asset)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "refund of %s rejected", purpose.Ref)
		rt.Log(builtin.GetValidatorLogLevel(a, rtt.INFO), "owner %s refunded %v of %s from %s", st.Owner, st.Remaining(), a.Asset, purpose.Ref)

	default:
		rt.Abortf(exitcode.SysErrInvalidMethod, "unsupported vesting action %d", redeemer.Method)
	}
	return nil
}
