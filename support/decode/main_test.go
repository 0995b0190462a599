package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
)

func run(t *testing.T, args ...string) string {
	app := newApp()
	out := new(bytes.Buffer)
	app.Writer = out
	require.NoError(t, app.Run(append([]string{"decode"}, args...)))
	return out.String()
}

func TestDecodeCommands(t *testing.T) {
	st := vesting.ConstructState(tutil.NewKeyHash("owner"), tutil.NewKeyHash("beneficiary"), 1000, 2000, 3000, abi.NewTokenAmount(1000))

	t.Run("vested", func(t *testing.T) {
		assert.Equal(t, "750\n", run(t, "vested", "--at", "2500", "1000", "2000", "3000", "1000"))
		assert.Equal(t, "0\n", run(t, "vested", "--at", "1999", "1000", "2000", "3000", "1000"))
	})

	t.Run("state", func(t *testing.T) {
		out := run(t, "state", "--at", "2500", hex.EncodeToString(serde.MustSerialize(st)))
		assert.Contains(t, out, "beneficiary: "+st.Beneficiary.String())
		assert.Contains(t, out, "vested: 750\navailable: 750\n")
		assert.NotContains(t, out, "warning")
	})

	t.Run("action", func(t *testing.T) {
		out := run(t, "action", hex.EncodeToString(serde.MustSerialize(vesting.ClaimAction(abi.NewTokenAmount(500)))))
		assert.Equal(t, "claim 500\n", out)

		out = run(t, "action", hex.EncodeToString(serde.MustSerialize(vesting.RefundAction())))
		assert.Equal(t, "refund\n", out)
	})

	t.Run("encoded redeemer decodes back", func(t *testing.T) {
		encoded := strings.TrimSpace(run(t, "redeemer", "claim", "--encoding", "base58btc", "42"))
		assert.True(t, strings.HasPrefix(encoded, "z"))
		assert.Equal(t, "claim 42\n", run(t, "action", encoded))
	})

	t.Run("address", func(t *testing.T) {
		asset := tutil.MakeAsset("FOUNDER")
		expected, err := vesting.NewActor(asset).Address()
		require.NoError(t, err)
		assert.Equal(t, expected.String()+"\n", run(t, "address", asset.Policy.String(), asset.Name))
	})

	t.Run("int", func(t *testing.T) {
		amount := abi.NewTokenAmount(123456789)
		b, err := amount.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "123456789\n", run(t, "int", hex.EncodeToString(b)))
	})

	t.Run("raw", func(t *testing.T) {
		out := run(t, "raw", "80")
		assert.Contains(t, out, "[]")
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		app := newApp()
		app.Writer = new(bytes.Buffer)
		assert.Error(t, app.Run([]string{"decode", "state", "not-bytes"}))
		assert.Error(t, app.Run([]string{"decode", "state", "80"}))
	})
}
