package domain

import (
	"github.com/asynkron/protoactor-go/actor"

	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"
)

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_MODBUS       = "modbus"
	ACTOR_ID_COORDINATOR  = "coordinator"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_EMANAGER     = "emanager"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type ActorRef actor.PID

type ActorRequestMixIn struct {
	ReplyToRef *ActorRef
}

type ActorRequest interface {
	ReplyTo() *ActorRef
}

func (r ActorRequestMixIn) ReplyTo() *ActorRef {
	return r.ReplyToRef
}

type ActorResponseMixIn struct {
	ResponseError error
}

func (r ActorResponseMixIn) GetResponseError() error {
	return r.ResponseError
}

func (r ActorResponseMixIn) HasResponseError() bool {
	return r.ResponseError != nil
}

type ActorResponse interface {
	GetResponseError() error
	HasResponseError() bool
}

// RegisterRead is one register request of a snapshot poll.
type RegisterRead struct {
	Address  uint16
	DataType string
}

type GetControllerInfoRequest struct {
	ActorRequestMixIn
}

type GetControllerInfoResponse struct {
	ActorResponseMixIn
	Info *lambda_modbus.ControllerInfo
}

type ReadSensorValuesRequest struct {
	ActorRequestMixIn
	Reads []RegisterRead
}

type ReadSensorValuesResponse struct {
	ActorResponseMixIn
	// Values holds the raw register value per requested address. Addresses
	// the controller refused are simply missing.
	Values map[uint16]float64
}

type WriteRegisterRequest struct {
	ActorRequestMixIn
	Address uint16
	Value   int16
}

type WriteRegisterResponse struct {
	ActorResponseMixIn
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	InputNumbers []GenericInputNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
