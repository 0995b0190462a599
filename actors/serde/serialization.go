package serde

import (
	"bytes"

	"golang.org/x/xerrors"

	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
)

// Serializes a structure or value to CBOR.
func Serialize(o runtime.CBORMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := o.MarshalCBOR(buf); err != nil {
		return nil, xerrors.Errorf("CBOR serialization failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Serializes a value that is known to be encodable, e.g. a fully initialized parameter struct.
// Panics on failure.
func MustSerialize(o runtime.CBORMarshaler) []byte {
	s, err := Serialize(o)
	if err != nil {
		panic(err)
	}
	return s
}

// Deserializes CBOR data into o, requiring that all of data is consumed.
func Deserialize(data []byte, o runtime.CBORUnmarshaler) error {
	r := bytes.NewReader(data)
	if err := o.UnmarshalCBOR(r); err != nil {
		return xerrors.Errorf("CBOR deserialization failed: %w", err)
	}
	if r.Len() != 0 {
		return xerrors.Errorf("CBOR deserialization left %d trailing bytes", r.Len())
	}
	return nil
}
