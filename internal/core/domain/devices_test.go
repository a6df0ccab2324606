package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/sensor"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"
)

func TestDescriptorSensors(t *testing.T) {

	assert := assert.New(t)

	logger := zap.Must(zap.NewDevelopment())

	descriptors, err := sensor.Enumerate(sensor.Params{
		Templates:  sensor.DefaultDeviceTemplates(1, 0, 0, 0, 0),
		NamePrefix: "eu08l",
	}, logger)
	assert.NoError(err)

	dev := ControllerDevice(&lambda_modbus.ControllerInfo{
		Manufacturer:    "Lambda",
		Model:           "EU08L",
		FirmwareVersion: "V0.0.4-3K",
	}, "My Lambda")
	assert.Equal("My Lambda", dev.Name)
	assert.Equal("EU08L", dev.Model)

	sensors := DescriptorSensors(dev, descriptors)
	assert.Len(sensors, len(descriptors))

	byId := map[string]GenericSensor{}
	for _, s := range sensors {
		byId[s.Id] = s
	}

	flow := byId["hp1_flow_line_temperature"]
	assert.Equal("HP1 Flow Line Temperature", flow.Name)
	assert.Equal("°C", flow.UnitOfMeasurement)
	assert.Equal("temperature", flow.DeviceClass)
	assert.Equal("measurement", flow.StateClass)
	assert.Equal("hp1_flow_line_temperature", flow.ObjectId)
	assert.NotNil(flow.Precision)

	// state sensors expose only the decoded label
	opState := byId["hp1_operating_state"]
	assert.Empty(opState.UnitOfMeasurement)
	assert.Empty(opState.DeviceClass)
	assert.Empty(opState.StateClass)
	assert.Nil(opState.Precision)

	// all sensors past the first reference the device by id only
	assert.Empty(sensors[1].Device.Manufacturer)
	assert.Equal(dev.Id, sensors[1].Device.Id)
}

func TestEManagerInputNumbers(t *testing.T) {

	assert := assert.New(t)

	dev := Device{Id: "dev1"}
	numbers := EManagerInputNumbers(dev, 5000)

	assert.Len(numbers, 1)
	assert.Equal(INPUT_NUMBER_ID_EMGR_POWER, numbers[0].Id)
	assert.Equal(float64(5000), numbers[0].Max)
	assert.Equal(float64(50), numbers[0].Step)
}
