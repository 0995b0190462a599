package abi

import (
	"bytes"
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
)

// OutputRef uniquely references an output: the transaction that created it and its position
// among that transaction's outputs.
type OutputRef struct {
	TxID  cid.Cid
	Index uint64
}

func (r OutputRef) String() string {
	return fmt.Sprintf("%s#%d", r.TxID, r.Index)
}

type DatumKind int

const (
	// The output carries no datum.
	NoDatum DatumKind = iota
	// The output commits to a datum by hash; the datum itself travels in the transaction witnesses.
	DatumHash
	// The output carries the serialized datum itself.
	InlineDatum
)

func (k DatumKind) String() string {
	switch k {
	case NoDatum:
		return "none"
	case DatumHash:
		return "hash"
	case InlineDatum:
		return "inline"
	default:
		return fmt.Sprintf("DatumKind(%d)", int(k))
	}
}

// Datum is the state attached to an output. Each output exclusively owns its copy.
type Datum struct {
	Kind DatumKind
	// Set for DatumHash.
	Hash cid.Cid
	// Serialized value, set for InlineDatum.
	Inline []byte
}

func NoOutputDatum() Datum {
	return Datum{Kind: NoDatum}
}

func HashedDatum(h cid.Cid) Datum {
	return Datum{Kind: DatumHash, Hash: h}
}

// InlineDatumOf serializes a value into an inline datum.
func InlineDatumOf(v cbg.CBORMarshaler) (Datum, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalCBOR(buf); err != nil {
		return Datum{}, err
	}
	return Datum{Kind: InlineDatum, Inline: buf.Bytes()}, nil
}

// TxOut is an output as seen by a validator.
type TxOut struct {
	Address addr.Address
	Value   Value
	Datum   Datum
}

// TxInInfo is a spent input, resolved to the output it consumes.
type TxInInfo struct {
	OutRef OutputRef
	Output TxOut
}

type BoundKind int

const (
	NegInf BoundKind = iota
	Finite
	PosInf
)

// IntervalBound is one end of a validity interval.
type IntervalBound struct {
	Kind BoundKind
	// Meaningful only for Finite bounds.
	Time POSIXTime
}

func NegInfBound() IntervalBound {
	return IntervalBound{Kind: NegInf}
}

func FiniteBound(t POSIXTime) IntervalBound {
	return IntervalBound{Kind: Finite, Time: t}
}

func PosInfBound() IntervalBound {
	return IntervalBound{Kind: PosInf}
}

// Finite returns the bound's instant, and whether it has one.
func (b IntervalBound) Finite() (POSIXTime, bool) {
	if b.Kind != Finite {
		return 0, false
	}
	return b.Time, true
}

func (b IntervalBound) String() string {
	switch b.Kind {
	case NegInf:
		return "-inf"
	case PosInf:
		return "+inf"
	default:
		return b.Time.String()
	}
}

// Interval is the range of time within which a transaction is valid.
type Interval struct {
	Lower IntervalBound
	Upper IntervalBound
}

// Always is the interval with no bounds.
func Always() Interval {
	return Interval{Lower: NegInfBound(), Upper: PosInfBound()}
}

// Between is the interval [lower, upper].
func Between(lower, upper POSIXTime) Interval {
	return Interval{Lower: FiniteBound(lower), Upper: FiniteBound(upper)}
}

// After is the interval [lower, +inf).
func After(lower POSIXTime) Interval {
	return Interval{Lower: FiniteBound(lower), Upper: PosInfBound()}
}

// Contains reports whether t lies within the interval, bounds inclusive.
func (i Interval) Contains(t POSIXTime) bool {
	switch i.Lower.Kind {
	case PosInf:
		return false
	case Finite:
		if t < i.Lower.Time {
			return false
		}
	}
	switch i.Upper.Kind {
	case NegInf:
		return false
	case Finite:
		if t > i.Upper.Time {
			return false
		}
	}
	return true
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Lower, i.Upper)
}

// TxInfo is the read-only snapshot of a proposed transaction supplied to each validator
// invocation.
type TxInfo struct {
	ID          cid.Cid
	Inputs      []TxInInfo
	Outputs     []TxOut
	ValidRange  Interval
	Signatories []KeyHash
}

type PurposeKind int

const (
	// Spending an output locked at the validator's address.
	PurposeSpend PurposeKind = iota
	// Minting or burning under the validator's policy.
	PurposeMint
	// Withdrawing rewards from the validator's stake credential.
	PurposeWithdraw
	// Publishing a certificate for the validator's stake credential.
	PurposeCertify
)

func (k PurposeKind) String() string {
	switch k {
	case PurposeSpend:
		return "spend"
	case PurposeMint:
		return "mint"
	case PurposeWithdraw:
		return "withdraw"
	case PurposeCertify:
		return "certify"
	default:
		return fmt.Sprintf("PurposeKind(%d)", int(k))
	}
}

// ScriptPurpose is the role in which a validator is invoked.
type ScriptPurpose struct {
	Kind PurposeKind
	// The output being spent, set for PurposeSpend.
	Ref OutputRef
}

func SpendPurpose(ref OutputRef) ScriptPurpose {
	return ScriptPurpose{Kind: PurposeSpend, Ref: ref}
}

// Redeemer is the action requested of a validator: a method number tagging the action and the
// serialized parameters of that method.
type Redeemer struct {
	Method MethodNum
	Params []byte
}

// EmptyValue is the parameter and return type of methods that carry no data.
type EmptyValue struct{}
