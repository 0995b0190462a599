package testing

import (
	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	mh "github.com/multiformats/go-multihash"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// NewCidForTestGetter returns a closure that returns a Cid unique to that invocation.
// The Cid is unique wrt the closure returned, not globally. You can use this function
// in tests to mint transaction IDs.
func NewCidForTestGetter() func() cid.Cid {
	i := 31337
	return func() cid.Cid {
		obj, err := cbor.WrapObject([]int{i}, uint64(mh.BLAKE2B_MIN+31), -1)
		if err != nil {
			panic(err)
		}
		i++
		return obj.Cid()
	}
}

// MakeCID returns a Cid determined by input, e.g. for a transaction ID or a policy ID.
func MakeCID(input string) cid.Cid {
	obj, err := cbor.WrapObject(input, uint64(mh.BLAKE2B_MIN+31), -1)
	if err != nil {
		panic(err)
	}
	return obj.Cid()
}

// MakeAsset returns an asset whose policy is derived from the asset name.
func MakeAsset(name string) abi.AssetID {
	return abi.NewAssetID(MakeCID("policy/"+name), name)
}

// MakeOutputRef references output index of a transaction whose ID is derived from tx.
func MakeOutputRef(tx string, index uint64) abi.OutputRef {
	return abi.OutputRef{TxID: MakeCID("tx/" + tx), Index: index}
}
