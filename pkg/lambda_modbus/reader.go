package lambda_modbus

// Register data types used by the Lambda register map.
const (
	DATA_TYPE_INT16  = "int16"
	DATA_TYPE_UINT16 = "uint16"
	DATA_TYPE_INT32  = "int32"
)

// Writable registers.
const (
	REG_EMANAGER_POWER_SETPOINT uint16 = 104
)

type ControllerInfo struct {
	Manufacturer    string
	Model           string
	FirmwareVersion string
}

// HeatPumpModbusReader is the register-level access the bridge needs from a
// Lambda controller. Implementations are not safe for concurrent use; the
// modbus actor serializes access.
type HeatPumpModbusReader interface {
	// Open connects to the controller
	Open() error
	// Close disconnects from the controller
	Close() error
	// GetInfo returns controller metadata after verifying the connection
	GetInfo() (*ControllerInfo, error)
	// ReadValue reads one logical value at a register address. int32 values
	// span two consecutive registers.
	ReadValue(address uint16, dataType string) (float64, error)
	// WriteValue writes one holding register
	WriteValue(address uint16, value int16) error
}
