package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/port"
)

var policy = &DefaultEManagerPowerPolicy{
	MaxPower: 5000,
	StepWatt: 50,
	Logger:   zap.Must(zap.NewDevelopment()),
}

func TestClampPassThrough(t *testing.T) {

	assert := assert.New(t)

	d := policy.Clamp(2500)
	assert.Equal(int16(2500), d.PowerWatt)
	assert.False(d.Adjusted)
}

func TestClampNegative(t *testing.T) {

	assert := assert.New(t)

	d := policy.Clamp(-300)
	assert.Equal(int16(0), d.PowerWatt)
	assert.True(d.Adjusted)
}

func TestClampAboveMax(t *testing.T) {

	assert := assert.New(t)

	d := policy.Clamp(9000)
	assert.Equal(int16(5000), d.PowerWatt)
	assert.True(d.Adjusted)
}

func TestClampRoundsToStep(t *testing.T) {

	assert := assert.New(t)

	d := policy.Clamp(2474)
	assert.Equal(int16(2450), d.PowerWatt)
	assert.True(d.Adjusted)

	d = policy.Clamp(2475)
	assert.Equal(int16(2500), d.PowerWatt)
	assert.True(d.Adjusted)
}

func TestClampRegisterBound(t *testing.T) {

	assert := assert.New(t)

	wide := &DefaultEManagerPowerPolicy{
		MaxPower: 100000,
		Logger:   zap.Must(zap.NewDevelopment()),
	}

	d := wide.Clamp(80000)
	assert.Equal(int16(math.MaxInt16), d.PowerWatt)
	assert.True(d.Adjusted)
}

func TestPolicyInterface(t *testing.T) {

	var _ port.EManagerPowerPolicy = policy

	assert.Equal(t, uint32(5000), policy.MaxPowerWatt())
}
