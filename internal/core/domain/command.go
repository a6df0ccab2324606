package domain

import "fmt"

// EManagerRequest

type EManagerRequest interface {
	ActorRequest
	EManagerCommand() string
}

type EManagerRequestMixIn struct {
	ActorRequestMixIn
}

func (r EManagerRequestMixIn) EManagerCommand() string {
	return fmt.Sprintf("%T", r)
}

// EManagerResponse

type EManagerResponse interface {
	ActorResponse
	EManagerResponse() string
}

type EManagerResponseMixIn struct {
	ActorResponseMixIn
}

func (r EManagerResponseMixIn) EManagerResponse() string {
	return fmt.Sprintf("%T", r)
}

// EManager commands

type EManagerSetPowerRequest struct {
	EManagerRequestMixIn
	PowerWatt int32
}

type EManagerSetPowerResponse struct {
	EManagerResponseMixIn
	PowerWatt int32
	Changed   bool
}

type EManagerGetPowerRequest struct {
	EManagerRequestMixIn
}

type EManagerGetPowerResponse struct {
	EManagerResponseMixIn
	PowerWatt int32
}

// EManagerPowerDecision is the outcome of clamping a requested power
// setpoint to the configured limits.
type EManagerPowerDecision struct {
	PowerWatt int16
	Adjusted  bool
}

// ensure interface compliance
var _ EManagerRequest = (*EManagerSetPowerRequest)(nil)
