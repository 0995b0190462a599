package abi

import (
	"encoding/hex"
	"fmt"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/minio/blake2b-simd"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// KeyHashLength is the length of a verification key hash. It matches the payload of a
// secp256k1 address so that a key hash and its payment address are interchangeable.
const KeyHashLength = addr.PayloadHashLength

// KeyHash identifies a signing party: the blake2b-160 digest of its public key.
type KeyHash [KeyHashLength]byte

// KeyHashFromPubKey hashes a public key the same way go-address does for secp256k1 addresses.
func KeyHashFromPubKey(pubkey []byte) KeyHash {
	h, err := blake2b.New(&blake2b.Config{Size: KeyHashLength})
	if err != nil {
		panic(err) // size is a constant within blake2b bounds
	}
	_, _ = h.Write(pubkey)

	var k KeyHash
	copy(k[:], h.Sum(nil))
	return k
}

// KeyHashFromAddress extracts the key hash paying to a secp256k1 address.
func KeyHashFromAddress(a addr.Address) (KeyHash, error) {
	if a.Protocol() != addr.SECP256K1 {
		return KeyHash{}, xerrors.Errorf("address %s is not a key hash address (protocol %d)", a, a.Protocol())
	}
	var k KeyHash
	copy(k[:], a.Payload())
	return k, nil
}

// Address returns the payment address controlled by the key, with no further credentials.
func (k KeyHash) Address() addr.Address {
	a, err := addr.NewFromBytes(append([]byte{byte(addr.SECP256K1)}, k[:]...))
	if err != nil {
		panic(err) // payload length is fixed
	}
	return a
}

func (k KeyHash) IsZero() bool {
	return k == KeyHash{}
}

func (k KeyHash) String() string {
	return hex.EncodeToString(k[:])
}

func (k *KeyHash) MarshalCBOR(w io.Writer) error {
	if k == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	scratch := make([]byte, 9)
	if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajByteString, uint64(KeyHashLength)); err != nil {
		return err
	}
	_, err := w.Write(k[:])
	return err
}

func (k *KeyHash) UnmarshalCBOR(r io.Reader) error {
	*k = KeyHash{}

	br := cbg.GetPeeker(r)
	scratch := make([]byte, 8)

	maj, extra, err := cbg.CborReadHeaderBuf(br, scratch)
	if err != nil {
		return err
	}
	if maj != cbg.MajByteString {
		return fmt.Errorf("expected byte array for key hash")
	}
	if extra != KeyHashLength {
		return fmt.Errorf("key hash must be %d bytes, got %d", KeyHashLength, extra)
	}
	_, err = io.ReadFull(br, k[:])
	return err
}
