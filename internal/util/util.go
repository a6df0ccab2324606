package util

import (
	"github.com/GuidoJeuken-6512/lambda-wp/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		HeatPumpConfig: config.HeatPumpConfig{
			Name:    "Test WP",
			NumHPs:  1,
			NumBoil: 1,
			NumHC:   1,
		},
		ModbusTcpConfig: config.ModbusTCPConfig{
			Host:   "-.-.-.-",
			Port:   502,
			UnitId: 1,
		},
		MQTT: config.MQTTConfig{
			Host: "localhost",
			Port: 1883,
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		EManagerConfig: config.EManagerConfig{
			MaxPowerWatt: 5000,
		},
		Port: 8080,
	}
}
