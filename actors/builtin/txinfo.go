package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

///// Read-only accessors over a transaction snapshot. /////

// FindOwnInput returns the input spending the output referenced by ref.
func FindOwnInput(tx *abi.TxInfo, ref abi.OutputRef) (abi.TxInInfo, bool) {
	for _, in := range tx.Inputs {
		if in.OutRef == ref {
			return in, true
		}
	}
	return abi.TxInInfo{}, false
}

// FindContinuingOutput returns the first output paying to the address of the input spending
// ref. Later outputs at the same address are ignored, so a transaction spending several
// outputs of one script sees the same continuation from each of them.
func FindContinuingOutput(tx *abi.TxInfo, ref abi.OutputRef) (abi.TxOut, bool) {
	in, found := FindOwnInput(tx, ref)
	if !found {
		return abi.TxOut{}, false
	}
	for _, out := range tx.Outputs {
		if out.Address == in.Output.Address {
			return out, true
		}
	}
	return abi.TxOut{}, false
}

// ValueSentTo sums the quantity of asset across all outputs paying to address.
func ValueSentTo(tx *abi.TxInfo, address addr.Address, asset abi.AssetID) abi.TokenAmount {
	total := big.Zero()
	for _, out := range tx.Outputs {
		if out.Address == address {
			total = big.Add(total, out.Value.AmountOf(asset))
		}
	}
	return total
}

// SignedBy reports whether the key is among the transaction's signatories.
func SignedBy(tx *abi.TxInfo, key abi.KeyHash) bool {
	for _, s := range tx.Signatories {
		if s == key {
			return true
		}
	}
	return false
}

// LowerBoundTime returns the instant the transaction's validity interval starts at,
// if that bound is finite.
func LowerBoundTime(tx *abi.TxInfo) (abi.POSIXTime, bool) {
	return tx.ValidRange.Lower.Finite()
}
