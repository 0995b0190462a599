package mock

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

// A mock runtime for unit testing of validators in isolation.
// The mock allows direct specification of the invocation context as observable by a validator,
// resolves the spent output's state the way the ledger does, and records diagnostics.
type Runtime struct {
	// Invocation context
	purpose abi.ScriptPurpose
	tx      *abi.TxInfo

	// State override, and preimages of hashed datums.
	state     []byte
	witnesses map[cid.Cid][]byte

	// VM implementation
	inCall bool
	logs   []string

	// Expectations
	t                 testing.TB
	expectLogsContain []string
}

var _ runtime.Runtime = &Runtime{}
var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*runtime.CBORUnmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*runtime.CBORMarshaler)(nil)).Elem()

///// Implementation of the runtime API /////

func (rt *Runtime) Purpose() abi.ScriptPurpose {
	rt.requireInCall()
	return rt.purpose
}

func (rt *Runtime) TxInfo() *abi.TxInfo {
	rt.requireInCall()
	return rt.tx
}

func (rt *Runtime) State(obj runtime.CBORUnmarshaler) bool {
	rt.requireInCall()
	data, found := rt.resolveState()
	if !found {
		return false
	}
	if err := serde.Deserialize(data, obj); err != nil {
		rt.Abortf(exitcode.ErrSerialization, "failed to decode state of %s: %s", rt.purpose.Ref, err)
	}
	return true
}

func (rt *Runtime) resolveState() ([]byte, bool) {
	if rt.state != nil {
		return rt.state, true
	}
	in, found := builtin.FindOwnInput(rt.tx, rt.purpose.Ref)
	if !found {
		return nil, false
	}
	switch in.Output.Datum.Kind {
	case abi.InlineDatum:
		return in.Output.Datum.Inline, true
	case abi.DatumHash:
		data, ok := rt.witnesses[in.Output.Datum.Hash]
		return data, ok
	default:
		return nil, false
	}
}

func (rt *Runtime) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	rt.requireInCall()
	rt.t.Logf("Mock Runtime Abort ExitCode: %v Reason: %s", errExitCode, fmt.Sprintf(msg, args...))
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (rt *Runtime) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	rt.requireInCall()
	line := fmt.Sprintf(msg, args...)
	rt.logs = append(rt.logs, line)
	rt.t.Logf("Mock Runtime Log %d: %s", level, line)
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

///// Inspection facilities /////

func (rt *Runtime) Logs() []string {
	return rt.logs
}

///// Mocking facilities /////

// ExpectLogsContain expects some log line recorded before Verify to contain substr.
func (rt *Runtime) ExpectLogsContain(substr string) {
	rt.expectLogsContain = append(rt.expectLogsContain, substr)
}

// Verifies that expected calls were received, and resets all expectations.
func (rt *Runtime) Verify() {
	for _, substr := range rt.expectLogsContain {
		found := false
		for _, line := range rt.logs {
			if strings.Contains(line, substr) {
				found = true
				break
			}
		}
		if !found {
			rt.failTest("expected log containing %q, got %v", substr, rt.logs)
		}
	}

	rt.Reset()
}

// Resets expectations
func (rt *Runtime) Reset() {
	rt.expectLogsContain = nil
	rt.logs = nil
}

// Calls f() expecting it to invoke Runtime.Abortf() with a specified exit code.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	defer func() {
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
		}
	}()
	f()
}

// Calls f() expecting it to abort with a message containing substr, whatever the exit code.
func (rt *Runtime) ExpectAbortContainsMessage(expected exitcode.ExitCode, substr string, f func()) {
	defer func() {
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
		}
		if !strings.Contains(a.msg, substr) {
			rt.failTest("abort expected message containing %q, got %q", substr, a.msg)
		}
	}()
	f()
}

func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	rt.verifyExportedMethodType(meth)

	// There's no panic recovery here. If an abort is expected, this call will be inside an ExpectAbort block.
	// If not expected, the panic will escape and cause the test to fail.

	rt.inCall = true
	defer func() { rt.inCall = false }()
	var arg reflect.Value
	if params != nil {
		arg = reflect.ValueOf(params)
	} else {
		arg = reflect.Zero(meth.Type().In(1))
	}
	ret := meth.Call([]reflect.Value{reflect.ValueOf(rt), arg})
	return ret[0].Interface()
}

func (rt *Runtime) verifyExportedMethodType(meth reflect.Value) {
	t := meth.Type()
	rt.require(t.Kind() == reflect.Func, "%v is not a function", meth)
	rt.require(t.NumIn() == 2, "exported method %v must have two parameters, got %v", meth, t.NumIn())
	rt.require(t.In(0) == typeOfRuntimeInterface, "exported method first parameter must be runtime, got %v", t.In(0))
	rt.require(t.In(1).Kind() == reflect.Ptr, "exported method second parameter must be pointer to params, got %v", t.In(1))
	rt.require(t.In(1).Implements(typeOfCborUnmarshaler), "exported method second parameter must be CBOR-unmarshalable params, got %v", t.In(1))
	rt.require(t.NumOut() == 1, "exported method must return a single value")
	rt.require(t.Out(0).Implements(typeOfCborMarshaler), "exported method must return CBOR-marshalable value")
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.Fail()
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.FailNow()
}
