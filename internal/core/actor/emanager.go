package actor

import (
	"fmt"
	"time"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/config"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/port"
	. "github.com/GuidoJeuken-6512/lambda-wp/internal/util/actorutil"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// EManagerActor owns the E-Manager power consumption setpoint. Requested
// values are clamped by the policy, written to the controller and mirrored
// back to the MQTT number entity.
type EManagerActor struct {
	ActorWithStates
	stash       *Stash
	modbusActor *actor.PID
	mqttActor   *actor.PID
	config      *config.Config
	policy      port.EManagerPowerPolicy

	currentPower int16

	logger *zap.Logger
}

func NewEManagerActor(config *config.Config, modbusActor *actor.PID, mqttActor *actor.PID,
	policy port.EManagerPowerPolicy, logger *zap.Logger) *EManagerActor {
	act := &EManagerActor{
		config:      config,
		modbusActor: modbusActor,
		mqttActor:   mqttActor,
		policy:      policy,
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_EMANAGER, logger),
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(EMStartingState{
		actor: act,
	})
	return act
}

func (state *EManagerActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type EMStartingState struct {
	ActorState
	actor *EManagerActor
}

func (state EMStartingState) Name() string {
	return "starting"
}

func (state EMStartingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.actor.logger.Debug("emanager@starting started")

		// publish the initial setpoint so the number entity has a state
		state.actor.publishPowerState(ctx)

		state.actor.Become(EMIdleState{
			actor: state.actor,
		})
		state.actor.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.actor.logger.Debug("emanager@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Idle state

type EMIdleState struct {
	ActorState
	actor *EManagerActor
}

func (state EMIdleState) Name() string {
	return "idle"
}

func (state EMIdleState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.actor.logger.Debug("emanager@idle: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_EMANAGER,
			Healthy: true,
			State:   state.Name(),
		})
	case domain.EManagerGetPowerRequest:
		state.actor.logger.Debug("emanager@idle: EManagerGetPowerRequest")
		ForRequest(msg).Respond(ctx, domain.EManagerGetPowerResponse{
			PowerWatt: int32(state.actor.currentPower),
		})
	case domain.EManagerSetPowerRequest:
		state.actor.logger.Debug("emanager@idle: EManagerSetPowerRequest", zap.Int32("power", msg.PowerWatt))

		decision := state.actor.policy.Clamp(msg.PowerWatt)
		if decision.PowerWatt == state.actor.currentPower {
			// no change, mirror the state back so the UI resets
			state.actor.publishPowerState(ctx)
			ForRequest(msg).Respond(ctx, domain.EManagerSetPowerResponse{
				PowerWatt: int32(decision.PowerWatt),
			})
			return
		}

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.modbusActor, domain.WriteRegisterRequest{
			Address: lambda_modbus.REG_EMANAGER_POWER_SETPOINT,
			Value:   decision.PowerWatt,
		}, 3*time.Second), func(err error) any {
			return domain.WriteRegisterResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.actor.Become(EMWaitingWriteState{
			actor:     state.actor,
			requested: decision.PowerWatt,
			replyTo:   ForRequest(msg).ReplyTo(ctx),
		})
	default:
		state.actor.logger.Debug("emanager@idle: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// Waiting write state

type EMWaitingWriteState struct {
	ActorState
	actor     *EManagerActor
	requested int16
	replyTo   *actor.PID
}

func (state EMWaitingWriteState) Name() string {
	return "waitingWrite"
}

func (state EMWaitingWriteState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.WriteRegisterResponse:
		if msg.HasResponseError() {
			state.actor.logger.Error("emanager@waitingWrite write failed", zap.Error(msg.GetResponseError()))
			// revert the number entity to the last accepted value
			state.actor.publishPowerState(ctx)
			if state.replyTo != nil {
				ctx.Send(state.replyTo, domain.EManagerSetPowerResponse{
					EManagerResponseMixIn: domain.EManagerResponseMixIn{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: msg.GetResponseError(),
						},
					},
					PowerWatt: int32(state.actor.currentPower),
				})
			}
		} else {
			state.actor.logger.Info("emanager@waitingWrite setpoint written", zap.Int16("power", state.requested))
			state.actor.currentPower = state.requested
			state.actor.publishPowerState(ctx)
			if state.replyTo != nil {
				ctx.Send(state.replyTo, domain.EManagerSetPowerResponse{
					PowerWatt: int32(state.requested),
					Changed:   true,
				})
			}
		}
		state.actor.Become(EMIdleState{
			actor: state.actor,
		})
		state.actor.stash.UnstashAll(ctx)
	default:
		state.actor.logger.Debug("emanager@waitingWrite: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

func (a *EManagerActor) publishPowerState(ctx actor.Context) {
	ctx.Send(a.mqttActor, domain.PublishSensorUpdateRequest{
		Retain: true,
		Event: domain.InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: domain.INPUT_NUMBER_ID_EMGR_POWER,
			},
			Value: float64(a.currentPower),
		},
	})
}
