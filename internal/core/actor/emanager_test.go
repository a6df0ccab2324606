package actor

import (
	"testing"
	"time"

	adactor "github.com/GuidoJeuken-6512/lambda-wp/internal/adapter/actor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/service"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/util"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEManagerSetPower(t *testing.T) {

	require := require.New(t)

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	as := actor.NewActorSystem()
	context := as.Root

	reader := &lambda_modbus.TestHeatPumpModbusReader{
		Registers: lambda_modbus.TestRegisterDefaults(),
	}
	modbusPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewModbusActor(reader, logger)
	}))

	capture := &publishCapture{}
	mqttPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor { return capture }))

	policy := &service.DefaultEManagerPowerPolicy{
		MaxPower: cfg.EManagerConfig.MaxPowerWatt,
		StepWatt: 50,
		Logger:   logger,
	}
	emanagerPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewEManagerActor(&cfg, modbusPID, mqttPID, policy, logger)
	}))

	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(emanagerPID, domain.EManagerSetPowerRequest{
		PowerWatt: 2600,
	}, 5*time.Second).Result()
	require.NoError(err)

	resp, ok := res.(domain.EManagerSetPowerResponse)
	require.True(ok)
	assert.Equal(t, int32(2600), resp.PowerWatt)
	assert.True(t, resp.Changed)
	assert.Equal(t, int16(2600), reader.Written[lambda_modbus.REG_EMANAGER_POWER_SETPOINT])

	// the number entity state mirrors the accepted value
	time.Sleep(500 * time.Millisecond)
	var lastNumber *domain.InputNumberSensorUpdateEvent
	for _, ev := range capture.snapshot() {
		if n, ok := ev.(domain.InputNumberSensorUpdateEvent); ok {
			lastNumber = &n
		}
	}
	require.NotNil(lastNumber)
	assert.Equal(t, float64(2600), lastNumber.Value)

	// clamped request
	res, err = context.RequestFuture(emanagerPID, domain.EManagerSetPowerRequest{
		PowerWatt: 90000,
	}, 5*time.Second).Result()
	require.NoError(err)
	resp, ok = res.(domain.EManagerSetPowerResponse)
	require.True(ok)
	assert.Equal(t, int32(5000), resp.PowerWatt)

	res, err = context.RequestFuture(emanagerPID, domain.EManagerGetPowerRequest{}, 5*time.Second).Result()
	require.NoError(err)
	getResp, ok := res.(domain.EManagerGetPowerResponse)
	require.True(ok)
	assert.Equal(t, int32(5000), getResp.PowerWatt)

	context.Stop(emanagerPID)
	context.Stop(modbusPID)
	context.Stop(mqttPID)

	as.Shutdown()
}
