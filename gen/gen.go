package main

import (
	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	vesting "github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"

	gen "github.com/whyrusleeping/cbor-gen"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/abi/cbor_gen.go", "abi",
		abi.AssetID{},
		abi.Redeemer{},
		abi.EmptyValue{},
	); err != nil {
		panic(err)
	}

	// Validators
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// validator state
		vesting.State{},
		// method params
		vesting.ClaimParams{},
	); err != nil {
		panic(err)
	}
}
