package test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/states"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
	"github.com/https-fairway-global/founder-vesting-smart-contract/support/vm"
)

type vestingEnv struct {
	v           *vm.VM
	actor       vesting.Actor
	script      addr.Address
	owner       abi.KeyHash
	beneficiary abi.KeyHash
}

func newVestingEnv(t *testing.T, now abi.POSIXTime) *vestingEnv {
	v, err := vm.NewVM(context.Background(), vm.WithTime(now))
	require.NoError(t, err)
	actor := vesting.NewActor(tutil.MakeAsset("FOUNDER"))
	script, err := v.Deploy(actor)
	require.NoError(t, err)
	return &vestingEnv{
		v:           v,
		actor:       actor,
		script:      script,
		owner:       tutil.NewKeyHash("owner"),
		beneficiary: tutil.NewKeyHash("beneficiary"),
	}
}

func (e *vestingEnv) tokens(qty int64) abi.Value {
	return abi.ValueOf(e.actor.Asset, abi.NewTokenAmount(qty))
}

// Funds the owner's wallet and locks part of it under st, returning the locked output.
func (e *vestingEnv) lock(t *testing.T, st *vesting.State, walletBalance int64) abi.OutputRef {
	id, err := e.v.Fund(abi.TxOut{Address: e.owner.Address(), Value: e.tokens(walletBalance)})
	require.NoError(t, err)

	datum, err := abi.InlineDatumOf(st)
	require.NoError(t, err)
	res, err := e.v.ApplyTx(&vm.Tx{
		Inputs: []vm.Input{{Ref: abi.OutputRef{TxID: id, Index: 0}}},
		Outputs: []abi.TxOut{
			{Address: e.script, Value: abi.ValueOf(e.actor.Asset, st.TotalVestingQuantity), Datum: datum},
			{Address: e.owner.Address(), Value: abi.ValueOf(e.actor.Asset, big.Sub(abi.NewTokenAmount(walletBalance), st.TotalVestingQuantity))},
		},
		ValidRange:  abi.After(e.v.Now()),
		Signatories: []abi.KeyHash{e.owner},
	})
	require.NoError(t, err)
	return abi.OutputRef{TxID: res.ID, Index: 0}
}

// Builds a claim of amount from the locked output ref, continuing with the advanced state.
func (e *vestingEnv) claimTx(t *testing.T, ref abi.OutputRef, amount int64) *vm.Tx {
	locked, found := e.v.Output(ref)
	require.True(t, found)
	var st vesting.State
	require.Equal(t, abi.InlineDatum, locked.Datum.Kind)
	require.NoError(t, serde.Deserialize(locked.Datum.Inline, &st))

	next, err := abi.InlineDatumOf(st.WithClaim(abi.NewTokenAmount(amount)))
	require.NoError(t, err)
	remaining := big.Sub(locked.Value.AmountOf(e.actor.Asset), abi.NewTokenAmount(amount))
	return &vm.Tx{
		Inputs: []vm.Input{{Ref: ref, Redeemer: vesting.ClaimAction(abi.NewTokenAmount(amount))}},
		Outputs: []abi.TxOut{
			{Address: e.beneficiary.Address(), Value: e.tokens(amount)},
			{Address: e.script, Value: abi.ValueOf(e.actor.Asset, remaining), Datum: next},
		},
		ValidRange:  abi.After(e.v.Now()),
		Signatories: []abi.KeyHash{e.beneficiary},
	}
}

func (e *vestingEnv) checkInvariants(t *testing.T) *states.VestingSummary {
	summary, msgs, err := states.CheckVestingInvariants(e.v, e.actor)
	require.NoError(t, err)
	require.True(t, msgs.IsEmpty(), msgs.Messages())
	return summary
}
