package actor

import (
	"fmt"
	"time"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/config"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/sensor"
	. "github.com/GuidoJeuken-6512/lambda-wp/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// CoordinatorActor polls the controller on a fixed interval, materializes the
// value snapshot and forwards per-sensor updates to the MQTT actor.
type CoordinatorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	modbusActor *actor.PID
	mqttActor   *actor.PID
	config      *config.Config
	descriptors []sensor.Descriptor
	reads       []domain.RegisterRead

	logger *zap.Logger
}

type coordinatorTick struct {
}

func NewCoordinatorActor(config *config.Config, modbusActor *actor.PID, mqttActor *actor.PID,
	descriptors []sensor.Descriptor, logger *zap.Logger) *CoordinatorActor {
	act := &CoordinatorActor{
		config:      config,
		modbusActor: modbusActor,
		mqttActor:   mqttActor,
		descriptors: descriptors,
		reads:       registerReads(descriptors),
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_COORDINATOR, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *CoordinatorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *CoordinatorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("coordinator@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), coordinatorTick{})
		}

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetControllerInfoRequest{}, 1*time.Second), func(err error) any {
			return domain.GetControllerInfoResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingInfoReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("coordinator@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *CoordinatorActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetControllerInfoResponse:
		if msg.HasResponseError() {
			state.logger.Error("coordinator@waitingInfo GetControllerInfoResponse", zap.Error(msg.GetResponseError()))
			state.behavior.Become(state.DefaultReceive)
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Info("coordinator@waitingInfo controller detected",
			zap.String("manufacturer", msg.Info.Manufacturer),
			zap.String("model", msg.Info.Model),
			zap.String("firmware", msg.Info.FirmwareVersion))
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("coordinator@waitingInfo: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *CoordinatorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("coordinator@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_COORDINATOR,
			Healthy: true,
			State:   "idle",
		})
	case coordinatorTick:
		state.logger.Debug("coordinator@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.ReadSensorValuesRequest{
			Reads: state.reads,
		}, 15*time.Second), func(err error) any {
			return domain.ReadSensorValuesResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})

		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), coordinatorTick{})
		state.behavior.BecomeStacked(state.WaitingSnapshotReceive)
	default:
		state.logger.Debug("coordinator@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *CoordinatorActor) WaitingSnapshotReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ReadSensorValuesResponse:
		if msg.HasResponseError() {
			state.logger.Error("coordinator@waiting ReadSensorValuesResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("coordinator@waiting ReadSensorValuesResponse", zap.Int("values", len(msg.Values)))

		state.publishSnapshot(ctx, msg.Values)

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("coordinator@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// publishSnapshot turns raw register values into the scaled snapshot keyed by
// effective sensor id, decodes each descriptor against it and forwards the
// resulting updates. Sensors whose register did not answer stay absent and
// publish nothing.
func (state *CoordinatorActor) publishSnapshot(ctx actor.Context, values map[uint16]float64) {
	snapshot := make(map[string]any, len(state.descriptors))
	for i := range state.descriptors {
		d := &state.descriptors[i]
		raw, ok := values[d.Address]
		if !ok {
			continue
		}
		snapshot[d.EffectiveID()] = raw * d.EffectiveScale()
	}

	for i := range state.descriptors {
		d := &state.descriptors[i]
		decoded := d.Decode(snapshot, state.logger)

		var event domain.SensorUpdateEvent
		switch decoded.Kind {
		case sensor.DecodedNumber:
			event = domain.FloatSensorUpdateEvent{
				SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
					Id: d.EffectiveID(),
				},
				Value:    decoded.Number,
				Decimals: displayDecimals(d),
			}
		case sensor.DecodedText:
			event = domain.TextSensorUpdateEvent{
				SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
					Id: d.EffectiveID(),
				},
				Value: decoded.Text,
			}
		default:
			continue
		}
		ctx.Send(state.mqttActor, domain.PublishSensorUpdateRequest{
			Event: event,
		})
	}
}

func registerReads(descriptors []sensor.Descriptor) []domain.RegisterRead {
	reads := make([]domain.RegisterRead, 0, len(descriptors))
	for i := range descriptors {
		reads = append(reads, domain.RegisterRead{
			Address:  descriptors[i].Address,
			DataType: descriptors[i].DataType,
		})
	}
	return reads
}

func displayDecimals(d *sensor.Descriptor) uint {
	if d.Precision != nil && *d.Precision >= 0 {
		return uint(*d.Precision)
	}
	switch d.EffectiveScale() {
	case 0.01:
		return 2
	case 0.1:
		return 1
	}
	return 0
}
