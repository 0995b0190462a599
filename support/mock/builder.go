package mock

import (
	"testing"

	"github.com/ipfs/go-cid"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

// Build for fluent initialization of a mock runtime.
type RuntimeBuilder struct {
	rt *Runtime
}

// Initializes a new builder for a validator spending the output ref.
func NewBuilder(ref abi.OutputRef) *RuntimeBuilder {
	m := &Runtime{
		purpose: abi.SpendPurpose(ref),
		tx: &abi.TxInfo{
			ValidRange: abi.Always(),
		},

		state:     nil,
		witnesses: make(map[cid.Cid][]byte),

		t:                 nil, // Initialized at Build()
		expectLogsContain: nil,
	}
	return &RuntimeBuilder{m}
}

// Builds a new runtime object with the configured values.
func (b *RuntimeBuilder) Build(t testing.TB) *Runtime {
	cpy := *b.rt

	// Deep copy the mutable values.
	cpy.witnesses = make(map[cid.Cid][]byte)
	for k, v := range b.rt.witnesses {
		cpy.witnesses[k] = v
	}

	cpy.t = t
	return &cpy
}

func (b *RuntimeBuilder) WithPurpose(purpose abi.ScriptPurpose) *RuntimeBuilder {
	b.rt.purpose = purpose
	return b
}

func (b *RuntimeBuilder) WithTxInfo(tx *abi.TxInfo) *RuntimeBuilder {
	b.rt.tx = tx
	return b
}

// WithState overrides the state the validator loads with the serialization of st.
func (b *RuntimeBuilder) WithState(st runtime.CBORMarshaler) *RuntimeBuilder {
	b.rt.state = serde.MustSerialize(st)
	return b
}

// WithRawState overrides the state the validator loads, regardless of the spent output's datum.
func (b *RuntimeBuilder) WithRawState(data []byte) *RuntimeBuilder {
	b.rt.state = data
	return b
}

// WithDatumWitness supplies the preimage of a hashed datum.
func (b *RuntimeBuilder) WithDatumWitness(data []byte) *RuntimeBuilder {
	h, err := abi.DatumHashOf(data)
	if err != nil {
		panic(err)
	}
	b.rt.witnesses[h] = data
	return b
}
