package abi

import (
	"fmt"
	"sort"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
)

// AssetID names a fungible asset: the identifier of the policy that controls its supply, and
// an asset name unique within that policy.
type AssetID struct {
	Policy cid.Cid
	Name   string
}

func NewAssetID(policy cid.Cid, name string) AssetID {
	return AssetID{Policy: policy, Name: name}
}

func (a AssetID) String() string {
	return fmt.Sprintf("%s.%s", a.Policy, a.Name)
}

func (a AssetID) less(b AssetID) bool {
	if a.Policy.KeyString() != b.Policy.KeyString() {
		return a.Policy.KeyString() < b.Policy.KeyString()
	}
	return a.Name < b.Name
}

// Value is the bundle of asset quantities carried by an output.
// An asset absent from the bundle has quantity zero.
type Value map[AssetID]TokenAmount

// ValueOf returns a bundle holding a single asset.
func ValueOf(asset AssetID, amount TokenAmount) Value {
	return Value{asset: amount}
}

// AmountOf returns the quantity of asset in the bundle.
func (v Value) AmountOf(asset AssetID) TokenAmount {
	amt, ok := v[asset]
	if !ok || amt.Nil() {
		return big.Zero()
	}
	return amt
}

// Add returns a new bundle holding the sum of both bundles.
func (v Value) Add(o Value) Value {
	sum := make(Value, len(v)+len(o))
	for a := range v {
		sum[a] = v.AmountOf(a)
	}
	for a := range o {
		sum[a] = big.Add(sum.AmountOf(a), o.AmountOf(a))
	}
	return sum
}

// Assets lists the assets present in the bundle in a deterministic order.
func (v Value) Assets() []AssetID {
	assets := make([]AssetID, 0, len(v))
	for a := range v {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].less(assets[j])
	})
	return assets
}
