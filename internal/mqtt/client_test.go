package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/config"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/domain"
)

func TestInputNumberCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/number/number_name/set"
	r := inputNumberCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "number_name", "number_id extract")
}

func TestInputNumberCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/number/number_name/state"
	r := inputNumberCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}

func TestSensorDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			BaseTopic: "lambdawp",
		},
	}
	client := CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)

	dev := domain.Device{Id: "dev1", Name: "Lambda EU08L"}
	sensor := domain.GenericSensor{
		Device:            dev,
		Id:                "hp1_flow_temp",
		SensorType:        domain.SENSOR_TYPE_SENSOR,
		Name:              "HP1 Flow Line Temperature",
		UniqueId:          "uid_dev1_hp1_flow_temp",
		ObjectId:          "hp1_flow_temp",
		UnitOfMeasurement: "°C",
		StateClass:        "measurement",
		DeviceClass:       "temperature",
		Precision:         precision(1),
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal("lambdawp/sensor/hp1_flow_temp/state", msg.StateTopic)
	assert.Equal("lambdawp/bridge/state", msg.AvTopic)
	assert.Equal("hp1_flow_temp", msg.ObjectId)
	assert.Equal("temperature", msg.DeviceClass)
	assert.Equal("mqtt", msg.Platform)

	payload, err := json.Marshal(msg)
	assert.NoError(err)
	assert.Contains(string(payload), `"suggested_display_precision":1`)
	assert.Contains(string(payload), `"object_id":"hp1_flow_temp"`)

	topic := HADiscoverySensorTopic(sensor)
	assert.Equal("homeassistant/sensor/dev1/hp1_flow_temp/config", topic)
}

func TestStateSensorDiscoveryMessageOmitsMeasurementFields(t *testing.T) {

	assert := assert.New(t)

	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			BaseTopic: "lambdawp",
		},
	}
	client := CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)

	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "dev1"},
		Id:         "hp1_operating_state",
		SensorType: domain.SENSOR_TYPE_SENSOR,
		Name:       "HP1 Operating State",
		UniqueId:   "uid_dev1_hp1_operating_state",
		ObjectId:   "hp1_operating_state",
	}

	payload, err := json.Marshal(GenericSensorToHADiscoveryMessage(client, sensor))
	assert.NoError(err)
	assert.NotContains(string(payload), "unit_of_measurement")
	assert.NotContains(string(payload), "state_class")
	assert.NotContains(string(payload), "device_class")
	assert.NotContains(string(payload), "suggested_display_precision")
}

func TestInputNumberDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			BaseTopic: "lambdawp",
		},
	}
	client := CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)

	in := domain.GenericInputNumber{
		Device:   domain.Device{Id: "dev1"},
		Id:       "emanager_power_setpoint",
		Name:     "E-Manager power setpoint",
		UniqueId: "uid_dev1_emanager_power_setpoint",
		Min:      0,
		Max:      5000,
		Step:     50,
		Mode:     "box",
	}

	msg := GenericInputNumberToHADiscoveryMessage(client, in)

	assert.Equal("lambdawp/number/emanager_power_setpoint/state", msg.StateTopic)
	assert.Equal("lambdawp/number/emanager_power_setpoint/set", msg.CommandTopic)
	assert.Equal(float64(5000), msg.Max)
	assert.Equal("homeassistant/number/dev1/emanager_power_setpoint/config", HADiscoveryInputNumberTopic(in))
}

func precision(p int) *int {
	return &p
}
