package builtin_test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/exitcode"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/support/mock"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
)

// Exercises the helpers through a method with the validator's signature.
type helperHarness struct {
	err   error
	check bool
}

func (h *helperHarness) Exec(rt runtime.Runtime, _ *abi.Redeemer) *abi.EmptyValue {
	builtin.RequireParam(rt, h.check, "check failed")
	builtin.RequireNoErr(rt, h.err, exitcode.ErrIllegalState, "helper failed")
	return nil
}

func TestRequireNoErr(t *testing.T) {
	rt := mock.NewBuilder(tutil.MakeOutputRef("helper", 0)).Build(t)

	t.Run("no error", func(t *testing.T) {
		h := &helperHarness{check: true}
		rt.Call(h.Exec, &abi.Redeemer{})
	})

	t.Run("uncoded error aborts with the default code", func(t *testing.T) {
		h := &helperHarness{check: true, err: xerrors.New("boom")}
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalState, "helper failed: boom", func() {
			rt.Call(h.Exec, &abi.Redeemer{})
		})
	})

	t.Run("coded error aborts with its own code", func(t *testing.T) {
		h := &helperHarness{check: true, err: exitcode.ErrForbidden.Wrapf("denied")}
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Exec, &abi.Redeemer{})
		})
	})

	t.Run("code survives further wrapping", func(t *testing.T) {
		coded := exitcode.ErrInsufficientFunds.Wrapf("short")
		h := &helperHarness{check: true, err: xerrors.Errorf("outer: %w", coded)}
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.Exec, &abi.Redeemer{})
		})
	})

	t.Run("failed param check", func(t *testing.T) {
		h := &helperHarness{check: false}
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(h.Exec, &abi.Redeemer{})
		})
	})
}
