package actor

import (
	"testing"
	"time"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/util/actorutil"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetControllerInfoModbusActor(t *testing.T) {

	assert := assert.New(t)

	reader := lambda_modbus.CreateTestHeatPumpModbusReader()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetControllerInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetControllerInfoResponse)

	assert.Equal(resp.Info.Manufacturer, "Lambda", "Controller manufacturer")
	assert.Equal(resp.Info.Model, "EU08L", "Controller model")
	assert.Equal(resp.Info.FirmwareVersion, "V0.0.4-3K", "Controller firmware")

	context.Stop(pid)

	as.Shutdown()
}

func TestReadSensorValuesModbusActor(t *testing.T) {

	assert := assert.New(t)

	reader := lambda_modbus.CreateTestHeatPumpModbusReader()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.ReadSensorValuesRequest{
		Reads: []domain.RegisterRead{
			{Address: 1004, DataType: lambda_modbus.DATA_TYPE_INT16},
			{Address: 1020, DataType: lambda_modbus.DATA_TYPE_INT32},
			// not backed by the test register map, must be skipped
			{Address: 9999, DataType: lambda_modbus.DATA_TYPE_INT16},
		},
	}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.ReadSensorValuesResponse)

	assert.Equal(float64(3550), resp.Values[1004], "raw register value")
	assert.Equal(float64(184223), resp.Values[1020], "raw int32 register value")
	_, refused := resp.Values[9999]
	assert.False(refused, "refused address is absent")

	context.Stop(pid)

	as.Shutdown()
}

func TestWriteRegisterModbusActor(t *testing.T) {

	assert := assert.New(t)

	reader := &lambda_modbus.TestHeatPumpModbusReader{
		Registers: lambda_modbus.TestRegisterDefaults(),
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.WriteRegisterRequest{
		Address: lambda_modbus.REG_EMANAGER_POWER_SETPOINT,
		Value:   1500,
	}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.WriteRegisterResponse)

	assert.False(resp.HasResponseError())
	assert.Equal(int16(1500), reader.Written[lambda_modbus.REG_EMANAGER_POWER_SETPOINT])

	context.Stop(pid)

	as.Shutdown()
}
