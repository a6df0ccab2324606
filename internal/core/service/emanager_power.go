package service

import (
	"math"

	"go.uber.org/zap"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
)

// DefaultEManagerPowerPolicy bounds E-Manager power setpoints before they are
// written to the controller. The target register is a signed 16-bit value, so
// the upper bound is capped there even if the configured maximum is higher.
type DefaultEManagerPowerPolicy struct {
	MaxPower uint32
	StepWatt uint32
	Logger   *zap.Logger
}

func (p *DefaultEManagerPowerPolicy) Clamp(requestedWatt int32) domain.EManagerPowerDecision {

	value := float64(requestedWatt)
	adjusted := false

	if value < 0 {
		value = 0
		adjusted = true
	}

	maxValue := math.Min(float64(p.MaxPower), float64(math.MaxInt16))
	if value > maxValue {
		value = maxValue
		adjusted = true
	}

	if p.StepWatt > 0 {
		step := float64(p.StepWatt)
		rounded := math.Round(value/step) * step
		if rounded > maxValue {
			rounded -= step
		}
		if rounded != value {
			value = rounded
			adjusted = true
		}
	}

	if adjusted {
		p.Logger.Sugar().Infof("emanager: requested power %d W adjusted to %d W", requestedWatt, int16(value))
	}

	return domain.EManagerPowerDecision{
		PowerWatt: int16(value),
		Adjusted:  adjusted,
	}
}

func (p *DefaultEManagerPowerPolicy) SetMaxPowerWatt(powerWatt uint32) {
	p.MaxPower = powerWatt
}

func (p *DefaultEManagerPowerPolicy) MaxPowerWatt() uint32 {
	return p.MaxPower
}
