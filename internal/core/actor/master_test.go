package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "github.com/GuidoJeuken-6512/lambda-wp/internal/adapter/actor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/sensor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/util"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	descriptors := testDescriptors(t, cfg.HeatPumpConfig.NamePrefix(), logger)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, descriptors, func() *adactor.ModbusActor {
			return adactor.NewModbusActor(lambda_modbus.CreateTestHeatPumpModbusReader(), logger)
		}, func() *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	context.Stop(pid)

	as.Shutdown()
}

func testDescriptors(t *testing.T, namePrefix string, logger *zap.Logger) []sensor.Descriptor {
	t.Helper()

	templates := sensor.DefaultDeviceTemplates(1, 1, 0, 0, 1)
	descriptors, err := sensor.Enumerate(sensor.Params{
		Templates:  templates,
		General:    sensor.GeneralTemplates(),
		NamePrefix: namePrefix,
	}, logger)
	if err != nil {
		t.Fatal(err)
	}
	return descriptors
}
