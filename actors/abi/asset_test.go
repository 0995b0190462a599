package abi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
)

func TestValue(t *testing.T) {
	founder := tutil.MakeAsset("FOUNDER")
	other := tutil.MakeAsset("OTHER")

	t.Run("absent assets have zero quantity", func(t *testing.T) {
		v := abi.ValueOf(founder, abi.NewTokenAmount(7))
		assert.True(t, abi.NewTokenAmount(7).Equals(v.AmountOf(founder)))
		assert.True(t, abi.NewTokenAmount(0).Equals(v.AmountOf(other)))
		assert.True(t, abi.NewTokenAmount(0).Equals(abi.Value(nil).AmountOf(founder)))
	})

	t.Run("add sums per asset without modifying either bundle", func(t *testing.T) {
		a := abi.ValueOf(founder, abi.NewTokenAmount(7))
		b := abi.Value{founder: abi.NewTokenAmount(3), other: abi.NewTokenAmount(1)}
		sum := a.Add(b)

		assert.True(t, abi.NewTokenAmount(10).Equals(sum.AmountOf(founder)))
		assert.True(t, abi.NewTokenAmount(1).Equals(sum.AmountOf(other)))
		assert.True(t, abi.NewTokenAmount(7).Equals(a.AmountOf(founder)))
		assert.Len(t, a, 1)
	})

	t.Run("assets are listed deterministically", func(t *testing.T) {
		v := abi.Value{other: abi.NewTokenAmount(1), founder: abi.NewTokenAmount(2)}
		first := v.Assets()
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, v.Assets())
		}
		assert.Len(t, first, 2)
	})

	t.Run("asset serialization", func(t *testing.T) {
		data, err := serde.Serialize(&founder)
		require.NoError(t, err)
		var decoded abi.AssetID
		require.NoError(t, serde.Deserialize(data, &decoded))
		assert.Equal(t, founder, decoded)
	})
}
