package test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"
	"github.com/https-fairway-global/founder-vesting-smart-contract/support/vm"
)

const (
	startTime = abi.POSIXTime(10_000)
	cliffDate = abi.POSIXTime(20_000)
	endDate   = abi.POSIXTime(110_000)
)

func TestVestingLifecycle(t *testing.T) {
	env := newVestingEnv(t, 0)
	st := vesting.ConstructState(env.owner, env.beneficiary, startTime, cliffDate, endDate, abi.NewTokenAmount(1_000_000))
	ref := env.lock(t, st, 1_500_000)

	summary := env.checkInvariants(t)
	assert.Equal(t, 1, summary.Outputs)
	assert.True(t, abi.NewTokenAmount(1_000_000).Equals(summary.Locked))

	// Before the cliff nothing can be claimed.
	env.v.SetTime(cliffDate - 1)
	res, err := env.v.ApplyTx(env.claimTx(t, ref, 1))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, vm.ErrScriptRejected))
	require.Len(t, res.Scripts, 1)
	assert.Equal(t, vesting.ErrBeforeCliff, res.Scripts[0].Code)
	_, found := env.v.Output(ref)
	require.True(t, found)

	// At the cliff a tenth of the schedule has elapsed.
	env.v.SetTime(cliffDate)
	res, err = env.v.ApplyTx(env.claimTx(t, ref, 100_000))
	require.NoError(t, err)
	ref = abi.OutputRef{TxID: res.ID, Index: 1}
	env.checkInvariants(t)

	// Halfway, at most the unclaimed part of the vested half is available.
	env.v.SetTime(60_000)
	res, err = env.v.ApplyTx(env.claimTx(t, ref, 400_001))
	require.Error(t, err)
	require.Len(t, res.Scripts, 1)
	assert.Equal(t, vesting.ErrExceedsAvailableVested, res.Scripts[0].Code)

	res, err = env.v.ApplyTx(env.claimTx(t, ref, 400_000))
	require.NoError(t, err)
	ref = abi.OutputRef{TxID: res.ID, Index: 1}
	env.checkInvariants(t)

	// After the end date the rest is available, and the final continuation is empty.
	env.v.SetTime(endDate + 1)
	res, err = env.v.ApplyTx(env.claimTx(t, ref, 500_000))
	require.NoError(t, err)
	ref = abi.OutputRef{TxID: res.ID, Index: 1}

	summary = env.checkInvariants(t)
	assert.True(t, big.Zero().Equals(summary.Locked))
	assert.True(t, big.Zero().Equals(summary.Remaining))
	assert.True(t, abi.NewTokenAmount(1_000_000).Equals(env.v.BalanceAt(env.beneficiary.Address(), env.actor.Asset)))

	// Claiming from the drained output needs tokens from elsewhere to pay the beneficiary,
	// and the validator still refuses it.
	wallet, err := env.v.Fund(abi.TxOut{Address: env.beneficiary.Address(), Value: env.tokens(1)})
	require.NoError(t, err)
	tx := env.claimTx(t, ref, 1)
	tx.Inputs = append(tx.Inputs, vm.Input{Ref: abi.OutputRef{TxID: wallet, Index: 0}})
	tx.Outputs[1].Value = env.tokens(0)
	res, err = env.v.ApplyTx(tx)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, vm.ErrScriptRejected))
	require.Len(t, res.Scripts, 1)
	assert.Equal(t, vesting.ErrExceedsAvailableVested, res.Scripts[0].Code)
}

func TestVestingRefund(t *testing.T) {
	refundTx := func(env *vestingEnv, ref abi.OutputRef) *vm.Tx {
		return &vm.Tx{
			Inputs:      []vm.Input{{Ref: ref, Redeemer: vesting.RefundAction()}},
			Outputs:     []abi.TxOut{{Address: env.owner.Address(), Value: env.tokens(1_000_000)}},
			ValidRange:  abi.After(env.v.Now()),
			Signatories: []abi.KeyHash{env.owner},
		}
	}

	t.Run("owner recovers the balance before vesting starts", func(t *testing.T) {
		env := newVestingEnv(t, 0)
		st := vesting.ConstructState(env.owner, env.beneficiary, startTime, cliffDate, endDate, abi.NewTokenAmount(1_000_000))
		ref := env.lock(t, st, 1_000_000)

		env.v.SetTime(startTime - 1)
		_, err := env.v.ApplyTx(refundTx(env, ref))
		require.NoError(t, err)
		assert.Empty(t, env.v.OutputsAt(env.script))
		assert.True(t, abi.NewTokenAmount(1_000_000).Equals(env.v.BalanceAt(env.owner.Address(), env.actor.Asset)))
	})

	t.Run("refund is closed once vesting starts", func(t *testing.T) {
		env := newVestingEnv(t, 0)
		st := vesting.ConstructState(env.owner, env.beneficiary, startTime, cliffDate, endDate, abi.NewTokenAmount(1_000_000))
		ref := env.lock(t, st, 1_000_000)

		env.v.SetTime(startTime)
		res, err := env.v.ApplyTx(refundTx(env, ref))
		require.Error(t, err)
		assert.Equal(t, vesting.ErrNotBeforeStart, res.Scripts[0].Code)
		assert.Len(t, env.v.OutputsAt(env.script), 1)
	})
}

// Each validator invocation looks only at the first output returning to the script and at the
// total paid to the beneficiary, so one transaction spending two locked outputs can satisfy
// both with a single payment and a single continuation.
func TestSpendingTwoLockedOutputsSharesOneContinuation(t *testing.T) {
	env := newVestingEnv(t, 0)
	st := vesting.ConstructState(env.owner, env.beneficiary, 0, 0, 1000, abi.NewTokenAmount(1000))
	first := env.lock(t, st, 1000)
	second := env.lock(t, st, 1000)

	env.v.SetTime(500)
	tx := env.claimTx(t, first, 500)
	tx.Inputs = append(tx.Inputs, vm.Input{Ref: second, Redeemer: vesting.ClaimAction(abi.NewTokenAmount(500))})
	// The second output's balance goes to the beneficiary too.
	tx.Outputs[0].Value = env.tokens(1500)

	res, err := env.v.ApplyTx(tx)
	require.NoError(t, err)
	require.Len(t, res.Scripts, 2)

	summary := env.checkInvariants(t)
	assert.Equal(t, 1, summary.Outputs)
	assert.True(t, abi.NewTokenAmount(1500).Equals(env.v.BalanceAt(env.beneficiary.Address(), env.actor.Asset)))
}
