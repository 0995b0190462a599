package abi

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

const (
	hashFunction = uint64(mh.BLAKE2B_MIN + 31)
	hashLength   = 32
)

// CidBuilder is the builder for content identifiers of ledger objects: transaction IDs and
// datum hashes.
var CidBuilder cid.Builder = cid.V1Builder{
	Codec:    cid.DagCBOR,
	MhLength: hashLength,
	MhType:   hashFunction,
}

// DatumHashOf returns the hash identifying serialized datum bytes.
func DatumHashOf(data []byte) (cid.Cid, error) {
	return CidBuilder.Sum(data)
}
