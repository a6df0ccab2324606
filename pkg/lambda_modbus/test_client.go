package lambda_modbus

import "fmt"

func CreateTestHeatPumpModbusReader() HeatPumpModbusReader {
	return &TestHeatPumpModbusReader{
		Registers: TestRegisterDefaults(),
	}
}

// TestRegisterDefaults covers a one-hp, one-boiler, one-circuit installation
// plus the general block, with plausible raw values.
func TestRegisterDefaults() map[uint16]float64 {
	return map[uint16]float64{
		// general: ambient + E-manager
		0: 0, 1: 1, 2: 85, 3: 82, 4: 84,
		100: 0, 101: 1, 102: 0, 103: 1450, 104: 0,
		// hp1
		1000: 0, 1001: 0, 1002: 7, 1003: 1,
		1004: 3550, 1005: 2980, 1006: 120000, 1007: 52, 1008: 18,
		1009: 3200, 1010: 6400, 1011: 56, 1012: 1430, 1013: 412,
		1015: 2, 1016: 350, 1017: 300, 1018: 50, 1019: 0,
		1020: 184223, 1022: 761200,
		// boil1
		2000: 0, 2001: 1, 2002: 512, 2003: 484, 2004: 1, 2050: 600,
		// hc1
		5000: 0, 5001: 0, 5002: 352, 5003: 301, 5004: 215, 5005: 350, 5006: 2, 5007: 350,
	}
}

// TestHeatPumpModbusReader serves canned register values for tests.
type TestHeatPumpModbusReader struct {
	Registers map[uint16]float64
	Written   map[uint16]int16
	OpenErr   error
	ReadErr   error
}

func (reader *TestHeatPumpModbusReader) Open() error {
	return reader.OpenErr
}

func (reader *TestHeatPumpModbusReader) Close() error {
	return nil
}

func (reader *TestHeatPumpModbusReader) GetInfo() (*ControllerInfo, error) {
	return &ControllerInfo{
		Manufacturer:    "Lambda",
		Model:           "EU08L",
		FirmwareVersion: "V0.0.4-3K",
	}, nil
}

func (reader *TestHeatPumpModbusReader) ReadValue(address uint16, dataType string) (float64, error) {
	if reader.ReadErr != nil {
		return 0, reader.ReadErr
	}
	value, ok := reader.Registers[address]
	if !ok {
		return 0, fmt.Errorf("illegal data address %d", address)
	}
	return value, nil
}

func (reader *TestHeatPumpModbusReader) WriteValue(address uint16, value int16) error {
	if reader.Written == nil {
		reader.Written = make(map[uint16]int16)
	}
	reader.Written[address] = value
	return nil
}
