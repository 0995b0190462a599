package runtime

import (
	"io"

	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// Runtime is the host ledger's view of a single validator invocation.
// This is everything that is accessible to a validator, beyond its redeemer.
//
// A runtime is created per (spent output, transaction) pair and is never shared between
// invocations. Everything it exposes is immutable for the duration of the call.
type Runtime interface {
	// The role in which the validator is invoked, including the reference of the spent output.
	Purpose() abi.ScriptPurpose

	// The transaction being validated.
	// The returned snapshot must be treated as read-only.
	TxInfo() *abi.TxInfo

	// Loads the state attached to the spent output into obj.
	// Returns false if the output carries no state. Aborts if the state cannot be decoded into obj.
	State(obj CBORUnmarshaler) bool

	// Halts execution upon an error from which the validator cannot recover. The host observes
	// the transaction as rejected, with no partial effect.
	// This method does not return.
	// The message and args are for diagnostic purposes and do not persist on chain. They should be suitable for
	// passing to fmt.Errorf(msg, args...).
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Log sends a diagnostic message to the host. It has no effect on the outcome.
	Log(level rtt.LogLevel, msg string, args ...interface{})
}

// These interfaces are intended to match those from whyrusleeping/cbor-gen, such that code generated from that
// system is automatically usable here (but not mandatory).
type CBORMarshaler interface {
	MarshalCBOR(w io.Writer) error
}

type CBORUnmarshaler interface {
	UnmarshalCBOR(r io.Reader) error
}

// Wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}
