package testing

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/require"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// NewKeyHash returns the key hash of a stand-in public key derived from seed.
func NewKeyHash(seed string) abi.KeyHash {
	return abi.KeyHashFromPubKey([]byte("pubkey/" + seed))
}

func NewSECP256K1Addr(t testing.TB, pubkey string) addr.Address {
	// the pubkey of a secp256k1 address is hashed for consistent length.
	address, err := addr.NewSecp256k1Address([]byte(pubkey))
	require.NoError(t, err)
	return address
}

func NewActorAddr(t testing.TB, data string) addr.Address {
	address, err := addr.NewActorAddress([]byte(data))
	require.NoError(t, err)
	return address
}
