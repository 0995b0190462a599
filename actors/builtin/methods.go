package builtin

import (
	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

type vestingMethods struct {
	Claim  abi.MethodNum
	Refund abi.MethodNum
}

// MethodsVesting tags the actions of the vesting validator.
// Numbers start at one so that a zero-valued redeemer never selects an action.
var MethodsVesting = vestingMethods{1, 2}
