package lambda_modbus

import (
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
	"go.uber.org/zap"
)

type ModbusInstrument struct {
	RecordTime func(fnName string, readTime time.Duration)
}

type lambdaModbusClient struct {
	client     *modbus.ModbusClient
	logger     *zap.Logger
	instrument []ModbusInstrument
}

// CreateHeatPumpModbusReader returns a reader backed by a Modbus TCP
// connection to the Lambda controller.
func CreateHeatPumpModbusReader(host string, port uint, unitId uint8, timeout time.Duration,
	logger *zap.Logger, instrument []ModbusInstrument) (HeatPumpModbusReader, error) {

	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s:%d", host, port),
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	err = client.SetUnitId(unitId)
	if err != nil {
		return nil, err
	}
	return &lambdaModbusClient{
		client:     client,
		logger:     logger,
		instrument: instrument,
	}, nil
}

func (reader *lambdaModbusClient) Open() error {
	return reader.client.Open()
}

func (reader *lambdaModbusClient) Close() error {
	return reader.client.Close()
}

func (reader *lambdaModbusClient) GetInfo() (*ControllerInfo, error) {
	// the controller has no id registers; a read of the ambient block
	// validates connectivity and unit id
	_, err := reader.readRegister(0, modbus.HOLDING_REGISTER)
	if err != nil {
		return nil, err
	}
	return &ControllerInfo{
		Manufacturer: "Lambda",
		Model:        "Heat Pump Controller",
	}, nil
}

func (reader *lambdaModbusClient) ReadValue(address uint16, dataType string) (float64, error) {
	switch dataType {
	case DATA_TYPE_INT32:
		value, err := reader.readUint32(address, modbus.HOLDING_REGISTER)
		if err != nil {
			return 0, err
		}
		return float64(int32(value)), nil
	case DATA_TYPE_UINT16:
		value, err := reader.readRegister(address, modbus.HOLDING_REGISTER)
		if err != nil {
			return 0, err
		}
		return float64(value), nil
	default:
		// int16 is the register map's default
		value, err := reader.readRegister(address, modbus.HOLDING_REGISTER)
		if err != nil {
			return 0, err
		}
		return float64(int16(value)), nil
	}
}

func (reader *lambdaModbusClient) WriteValue(address uint16, value int16) error {
	return reader.writeRegister(address, uint16(value))
}

func (reader *lambdaModbusClient) readRegister(addr uint16, regType modbus.RegType) (uint16, error) {
	defer RecordTimer("ReadRegister", reader.instrument)()
	return reader.client.ReadRegister(addr, regType)
}

func (reader *lambdaModbusClient) readUint32(addr uint16, regType modbus.RegType) (uint32, error) {
	defer RecordTimer("ReadUint32", reader.instrument)()
	return reader.client.ReadUint32(addr, regType)
}

func (reader *lambdaModbusClient) writeRegister(addr uint16, value uint16) error {
	defer RecordTimer("WriteRegister", reader.instrument)()
	return reader.client.WriteRegister(addr, value)
}

func RecordTimer(name string, instrument []ModbusInstrument) func() {
	if instrument == nil {
		return func() {}
	}

	start := time.Now()
	return func() {
		duration := time.Since(start)
		for i := range instrument {
			instrument[i].RecordTime(name, duration)
		}
	}
}
