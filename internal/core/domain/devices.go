package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/carlmjohnson/versioninfo"

	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/sensor"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"
)

const (
	SENSOR_ID_BRIDGE_STATE     = "bridge"
	INPUT_NUMBER_ID_EMGR_POWER = "emanager_power_setpoint"
	DEVICE_CLASS_CONNECTIVITY  = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC    = "diagnostic"
	SENSOR_TYPE_SENSOR         = "sensor"
	SENSOR_TYPE_BINARY         = "binary_sensor"
	INPUT_NUMBER_MODE_BOX      = "box"
	INPUT_NUMBER_MODE_SLIDER   = "slider"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("lambdawp_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "Lambda",
		Model:        "Lambda WP Bridge",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Lambda WP %s", md5HashShort(baseTopic)),
	}
}

// ControllerDevice groups all heat pump sensors under one logical device,
// named after the installation.
func ControllerDevice(info *lambda_modbus.ControllerInfo, installationName string) Device {
	name := installationName
	if name == "" {
		name = info.Model
	}
	return Device{
		Id:           fmt.Sprintf("lambdawp_ctrl_%s", md5HashShort(installationName)),
		Version:      info.FirmwareVersion,
		Manufacturer: info.Manufacturer,
		Model:        info.Model,
		Name:         name,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// DescriptorSensors maps enumerated sensor descriptors to discoverable
// entities. State sensors report no unit, class or precision; their value is
// a decoded label.
func DescriptorSensors(controllerDevice Device, descriptors []sensor.Descriptor) []GenericSensor {
	sensors := make([]GenericSensor, 0, len(descriptors))
	for i := range descriptors {
		d := &descriptors[i]
		s := GenericSensor{
			Device:     controllerDevice,
			Id:         d.EffectiveID(),
			SensorType: SENSOR_TYPE_SENSOR,
			Name:       d.DisplayName(),
			UniqueId:   uniqueId(controllerDevice.Id, d.UniqueID),
			ObjectId:   strings.TrimPrefix(d.EntityID, "sensor."),
		}
		if !d.TxtMapping {
			s.UnitOfMeasurement = d.Unit
			s.StateClass = d.StateClass
			s.DeviceClass = d.DeviceClass
			s.Precision = d.Precision
		}
		if i > 0 {
			s.Device = IdDevice(controllerDevice)
		}
		sensors = append(sensors, s)
	}
	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Bridge connection state
	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func EManagerInputNumbers(controllerDevice Device, maxPowerWatt uint32) []GenericInputNumber {

	var inputNumbers []GenericInputNumber

	// E-Manager power consumption setpoint
	inputNumbers = append(inputNumbers, GenericInputNumber{
		Device:       controllerDevice,
		Id:           INPUT_NUMBER_ID_EMGR_POWER,
		Name:         "E-Manager power setpoint",
		UniqueId:     uniqueId(controllerDevice.Id, INPUT_NUMBER_ID_EMGR_POWER),
		Icon:         "mdi:lightning-bolt",
		Max:          float64(maxPowerWatt),
		Min:          0,
		Step:         50,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: 0,
	})

	return inputNumbers
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5HashShort(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])[0:8]
}
