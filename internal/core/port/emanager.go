package port

import (
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
)

type EManagerPowerPolicy interface {
	Clamp(requestedWatt int32) domain.EManagerPowerDecision
	SetMaxPowerWatt(powerWatt uint32)
	MaxPowerWatt() uint32
}
