package builtin_test

import (
	"testing"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"

	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	tutil "github.com/https-fairway-global/founder-vesting-smart-contract/support/testing"
)

type codedMock struct {
	code cid.Cid
}

func (c codedMock) Code() cid.Cid {
	return c.code
}

func TestValidatorLogLevel(t *testing.T) {
	validator := codedMock{tutil.MakeCID("log-level-test")}

	t.Run("log with default", func(t *testing.T) {
		assert.Equal(t, rtt.DEBUG, builtin.GetValidatorLogLevel(validator, rtt.DEBUG))
		assert.Equal(t, rtt.INFO, builtin.GetValidatorLogLevel(validator, rtt.INFO))
		assert.Equal(t, rtt.WARN, builtin.GetValidatorLogLevel(validator, rtt.WARN))
		assert.Equal(t, rtt.ERROR, builtin.GetValidatorLogLevel(validator, rtt.ERROR))
	})

	t.Run("set log level overrides any default", func(t *testing.T) {
		for _, def := range []rtt.LogLevel{rtt.DEBUG, rtt.INFO, rtt.WARN, rtt.ERROR} {
			for _, level := range []rtt.LogLevel{rtt.DEBUG, rtt.INFO, rtt.WARN, rtt.ERROR} {
				builtin.SetValidatorsLogLevel(level, validator)
				assert.Equal(t, level, builtin.GetValidatorLogLevel(validator, def))
			}
		}
	})

	t.Run("other codes keep the default", func(t *testing.T) {
		other := codedMock{tutil.MakeCID("log-level-test/other")}
		assert.Equal(t, rtt.WARN, builtin.GetValidatorLogLevel(other, rtt.WARN))
	})
}
