package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
)

func TestTxInfoAccessors(t *testing.T) {
	asset := tutil.MakeAsset("FOUNDER")
	other := tutil.MakeAsset("OTHER")
	alice := tutil.NewKeyHash("alice")
	bob := tutil.NewKeyHash("bob")
	script := tutil.NewActorAddr(t, "script")

	lockedRef := tutil.MakeOutputRef("lock", 0)
	walletRef := tutil.MakeOutputRef("wallet", 1)

	tx := &abi.TxInfo{
		ID: tutil.MakeCID("tx"),
		Inputs: []abi.TxInInfo{
			{OutRef: walletRef, Output: abi.TxOut{Address: alice.Address(), Value: abi.ValueOf(asset, abi.NewTokenAmount(5))}},
			{OutRef: lockedRef, Output: abi.TxOut{Address: script, Value: abi.ValueOf(asset, abi.NewTokenAmount(100))}},
		},
		Outputs: []abi.TxOut{
			{Address: bob.Address(), Value: abi.ValueOf(asset, abi.NewTokenAmount(30))},
			{Address: script, Value: abi.ValueOf(asset, abi.NewTokenAmount(70))},
			{Address: bob.Address(), Value: abi.Value{asset: abi.NewTokenAmount(4), other: abi.NewTokenAmount(9)}},
			{Address: script, Value: abi.ValueOf(asset, abi.NewTokenAmount(1))},
		},
		ValidRange:  abi.Between(100, 200),
		Signatories: []abi.KeyHash{alice},
	}

	t.Run("find own input", func(t *testing.T) {
		in, found := builtin.FindOwnInput(tx, lockedRef)
		require.True(t, found)
		assert.Equal(t, script, in.Output.Address)

		_, found = builtin.FindOwnInput(tx, tutil.MakeOutputRef("lock", 1))
		assert.False(t, found)
	})

	t.Run("continuing output is the first at the own address", func(t *testing.T) {
		out, found := builtin.FindContinuingOutput(tx, lockedRef)
		require.True(t, found)
		assert.True(t, abi.NewTokenAmount(70).Equals(out.Value.AmountOf(asset)))

		// the wallet input has no output at its address
		_, found = builtin.FindContinuingOutput(tx, walletRef)
		assert.False(t, found)

		_, found = builtin.FindContinuingOutput(tx, tutil.MakeOutputRef("missing", 0))
		assert.False(t, found)
	})

	t.Run("value sent sums matching outputs of one asset", func(t *testing.T) {
		assert.True(t, abi.NewTokenAmount(34).Equals(builtin.ValueSentTo(tx, bob.Address(), asset)))
		assert.True(t, abi.NewTokenAmount(9).Equals(builtin.ValueSentTo(tx, bob.Address(), other)))
		assert.True(t, abi.NewTokenAmount(0).Equals(builtin.ValueSentTo(tx, alice.Address(), asset)))
	})

	t.Run("signatories", func(t *testing.T) {
		assert.True(t, builtin.SignedBy(tx, alice))
		assert.False(t, builtin.SignedBy(tx, bob))
	})

	t.Run("lower bound", func(t *testing.T) {
		now, ok := builtin.LowerBoundTime(tx)
		assert.True(t, ok)
		assert.Equal(t, abi.POSIXTime(100), now)

		unbounded := *tx
		unbounded.ValidRange = abi.Always()
		_, ok = builtin.LowerBoundTime(&unbounded)
		assert.False(t, ok)

		unbounded.ValidRange = abi.Interval{Lower: abi.PosInfBound(), Upper: abi.PosInfBound()}
		_, ok = builtin.LowerBoundTime(&unbounded)
		assert.False(t, ok)
	})
}
