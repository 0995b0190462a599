package builtin

import (
	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// Validator time is expressed in milliseconds since the Unix epoch.
// These durations are used to express schedules in clock terms.
const (
	MillisecondsInSecond = abi.POSIXTime(1000)
	MillisecondsInHour   = 3600 * MillisecondsInSecond
	MillisecondsInDay    = 24 * MillisecondsInHour
	// A year is 365.25 days, matching the mean Gregorian year used by vesting agreements.
	MillisecondsInYear = 36525 * MillisecondsInDay / 100
)
