package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

// Ledger is a read-only view of unspent outputs.
type Ledger interface {
	OutputsAt(a addr.Address) []abi.OutputRef
	Output(ref abi.OutputRef) (abi.TxOut, bool)
}

type VestingSummary struct {
	Outputs int
	// Quantity of the asset held at the validator's address.
	Locked abi.TokenAmount
	// Quantity the states of those outputs expect to be locked.
	Remaining abi.TokenAmount
}

// Within this code, Go errors are not expected, but are often converted to messages so that checking
// can continue to find more errors rather than fail with no insight.
// Only errors that are particularly troublesome to recover from should propagate as Go errors.
func CheckVestingInvariants(ledger Ledger, validator vesting.Actor) (*VestingSummary, *builtin.MessageAccumulator, error) {
	address, err := validator.Address()
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to compute validator address: %w", err)
	}

	acc := &builtin.MessageAccumulator{}
	summary := &VestingSummary{
		Locked:    big.Zero(),
		Remaining: big.Zero(),
	}
	for _, ref := range ledger.OutputsAt(address) {
		acc := acc.WithPrefix("%v ", ref) // Intentional shadow
		out, found := ledger.Output(ref)
		if !found {
			return nil, nil, xerrors.Errorf("listed output %s not found", ref)
		}
		summary.Outputs++
		qty := out.Value.AmountOf(validator.Asset)
		summary.Locked = big.Add(summary.Locked, qty)

		switch out.Datum.Kind {
		case abi.NoDatum:
			acc.Add("locked output carries no state and can never be spent")
			continue
		case abi.DatumHash:
			// The preimage is only known to transactions spending the output.
			continue
		}

		var st vesting.State
		if err := serde.Deserialize(out.Datum.Inline, &st); err != nil {
			acc.Addf("undecodable vesting state: %v", err)
			continue
		}
		stSummary, msgs := vesting.CheckStateInvariants(&st)
		acc.WithPrefix("vesting: ").AddAll(msgs)
		summary.Remaining = big.Add(summary.Remaining, stSummary.Remaining)
		acc.Require(qty.GreaterThanEqual(stSummary.Remaining), "output holds %v, state expects %v locked",
			qty, stSummary.Remaining)
	}
	return summary, acc, nil
}
