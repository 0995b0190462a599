package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
)

// Coded is anything identified by a validator code, such as a validator.
type Coded interface {
	Code() cid.Cid
}

// ValidatorLog holds the level at which each validator code reports accepted spends.
type ValidatorLog struct {
	sync.RWMutex
	Validators map[cid.Cid]rtt.LogLevel
}

var validatorLogSingle *ValidatorLog

func init() {
	validatorLogSingle = &ValidatorLog{Validators: make(map[cid.Cid]rtt.LogLevel)}
}

func SetValidatorsLogLevel(logLevel rtt.LogLevel, validators ...Coded) {
	validatorLogSingle.Lock()
	defer validatorLogSingle.Unlock()

	for _, v := range validators {
		validatorLogSingle.Validators[v.Code()] = logLevel
	}
}

func GetValidatorLogLevel(v Coded, defValue rtt.LogLevel) rtt.LogLevel {
	validatorLogSingle.RLock()
	defer validatorLogSingle.RUnlock()

	level, ok := validatorLogSingle.Validators[v.Code()]
	if ok {
		return level
	}

	return defValue
}
