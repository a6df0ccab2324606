package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel         zapcore.Level
	HeatPumpConfig   HeatPumpConfig   `mapstructure:"heatpump"`
	ModbusTcpConfig  ModbusTCPConfig  `mapstructure:"modbus_tcp"`
	MQTT             MQTTConfig       `mapstructure:"mqtt"`
	MonitorConfig    MonitorConfig    `mapstructure:"monitor"`
	EManagerConfig   EManagerConfig   `mapstructure:"emanager"`
	Port             uint             `mapstructure:"port"`
	HttpLog          bool             `mapstructure:"http_log"`
}

// HeatPumpConfig mirrors the integration config entry: installation name,
// per-device-type instance counts and the legacy naming switch.
type HeatPumpConfig struct {
	Name                 string            `mapstructure:"name"`
	NumHPs               int               `mapstructure:"num_hps"`
	NumBoil              int               `mapstructure:"num_boil"`
	NumBuff              int               `mapstructure:"num_buff"`
	NumSol               int               `mapstructure:"num_sol"`
	NumHC                int               `mapstructure:"num_hc"`
	UseLegacyModbusNames bool              `mapstructure:"use_legacy_modbus_names"`
	DisabledRegisters    []uint16          `mapstructure:"disabled_registers"`
	SensorOverrides      map[string]string `mapstructure:"sensor_overrides"`
}

type ModbusTCPConfig struct {
	Host   string
	Port   uint
	UnitId uint `mapstructure:"unit_id"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

type EManagerConfig struct {
	Enable       bool   `mapstructure:"enable"`
	MaxPowerWatt uint32 `mapstructure:"max_power_watt"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

// NamePrefix is the installation name normalized the way legacy entity ids
// expect it: lowercased, spaces removed.
func (c HeatPumpConfig) NamePrefix() string {
	return strings.ReplaceAll(strings.ToLower(c.Name), " ", "")
}

// IsRegisterDisabled reports whether an absolute register address has been
// excluded by configuration.
func (c HeatPumpConfig) IsRegisterDisabled(address uint16) bool {
	for _, a := range c.DisabledRegisters {
		if a == address {
			return true
		}
	}
	return false
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
