package actor

import (
	"fmt"
	"time"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/util/actorutil"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const (
	MODBUS_ACTOR_ID = "modbus"
)

type ModbusActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	reader   lambda_modbus.HeatPumpModbusReader
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewModbusActor(reader lambda_modbus.HeatPumpModbusReader, logger *zap.Logger) *ModbusActor {
	act := &ModbusActor{
		reader:   reader,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger("modbus", logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *ModbusActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *ModbusActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("modbus@starting started")
		err := state.reader.Open()
		if err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.reader.Close()
	default:
		state.logger.Debug("modbus@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ModbusActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("modbus@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      MODBUS_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetControllerInfoRequest:
		state.logger.Debug("modbus@default: GetControllerInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getControllerInfo),
			mapTaskResult[domain.GetControllerInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetControllerInfoResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case domain.ReadSensorValuesRequest:
		state.logger.Debug("modbus@default: ReadSensorValuesRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.ReadSensorValuesResponse, error) {
			return state.readSensorValues(msg.Reads)
		}),
			mapTaskResult[domain.ReadSensorValuesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.ReadSensorValuesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(10 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case domain.WriteRegisterRequest:
		state.logger.Debug("modbus@default: WriteRegisterRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.WriteRegisterResponse {
			a := state.writeRegister(msg.Address, msg.Value)
			return &a
		}),
			mapTaskResult[domain.WriteRegisterResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.WriteRegisterResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("modbus@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *ModbusActor) WaitingModbus(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("modbus@WaitingModbus backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("modbus@WaitingModbus stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *ModbusActor) getControllerInfo() (*domain.GetControllerInfoResponse, error) {
	info, err := a.reader.GetInfo()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetControllerInfoResponse{
		Info: info,
	}, nil
}

// readSensorValues polls one register at a time. A failed read drops that
// address from the result instead of failing the whole snapshot.
func (a *ModbusActor) readSensorValues(reads []domain.RegisterRead) (*domain.ReadSensorValuesResponse, error) {
	values := make(map[uint16]float64, len(reads))
	for _, r := range reads {
		value, err := a.reader.ReadValue(r.Address, r.DataType)
		if err != nil {
			logger.Error(err)
			continue
		}
		values[r.Address] = value
	}
	return &domain.ReadSensorValuesResponse{
		Values: values,
	}, nil
}

func (a *ModbusActor) writeRegister(address uint16, value int16) domain.WriteRegisterResponse {
	err := a.reader.WriteValue(address, value)
	if err != nil {
		logger.Error(err)
		return domain.WriteRegisterResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	}
	return domain.WriteRegisterResponse{}
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
