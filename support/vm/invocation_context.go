package vm

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
	"github.com/https-fairway-global/founder-vesting-smart-contract/support/ipld"
)

// Context for a single validator invocation.
type invocationContext struct {
	purpose abi.ScriptPurpose
	tx      *abi.TxInfo
	blocks  *ipld.BlockStoreInMemory
}

var _ runtime.Runtime = (*invocationContext)(nil)

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func newInvocationContext(purpose abi.ScriptPurpose, tx *abi.TxInfo,
	blocks *ipld.BlockStoreInMemory) *invocationContext {
	return &invocationContext{
		purpose: purpose,
		tx:      tx,
		blocks:  blocks,
	}
}

// Runs the validator, converting an abort into a result. Any other panic is a fault of the
// validator and is returned as an error.
func (ic *invocationContext) invoke(val Validator, redeemer *abi.Redeemer) (res ScriptResult, err error) {
	res.Ref = ic.purpose.Ref
	defer func() {
		if r := recover(); r != nil {
			if a, ok := r.(abort); ok {
				res.Code = a.code
				res.Message = a.msg
				return
			}
			err = xerrors.Errorf("validator %s panicked spending %s: %v", val.Code(), ic.purpose.Ref, r)
		}
	}()
	val.Spend(ic, redeemer)
	res.Code = exitcode.Ok
	return res, nil
}

func (ic *invocationContext) Purpose() abi.ScriptPurpose {
	return ic.purpose
}

func (ic *invocationContext) TxInfo() *abi.TxInfo {
	return ic.tx
}

func (ic *invocationContext) State(obj runtime.CBORUnmarshaler) bool {
	in, found := builtin.FindOwnInput(ic.tx, ic.purpose.Ref)
	if !found {
		return false
	}
	datum := in.Output.Datum
	switch datum.Kind {
	case abi.InlineDatum:
		if err := serde.Deserialize(datum.Inline, obj); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode inline state of %s: %s", ic.purpose.Ref, err)
		}
		return true
	case abi.DatumHash:
		data, found := ic.blocks.GetRaw(datum.Hash)
		if !found {
			return false
		}
		if err := serde.Deserialize(data, obj); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode state %s of %s: %s", datum.Hash, ic.purpose.Ref, err)
		}
		return true
	default:
		return false
	}
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	switch level {
	case rtt.DEBUG:
		log.Debugf(msg, args...)
	case rtt.INFO:
		log.Infof(msg, args...)
	case rtt.WARN:
		log.Warnf(msg, args...)
	default:
		log.Errorf(msg, args...)
	}
}
