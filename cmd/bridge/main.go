package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adactor "github.com/GuidoJeuken-6512/lambda-wp/internal/adapter/actor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/config"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/actor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/core/sensor"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/server"
	"github.com/GuidoJeuken-6512/lambda-wp/internal/util/actorutil"
	"github.com/GuidoJeuken-6512/lambda-wp/pkg/lambda_modbus"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := initConfig()
	if err != nil {
		slog.Error("config errors", "error", err)
		return
	}
	safePrintConfig(*cfg)

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())

	defer logger.Sync()

	// enumerate the sensor set once. A broken override table stops the
	// process here instead of surfacing as half-registered sensors later.
	descriptors, err := enumerateSensors(cfg, logger)
	if err != nil {
		logger.Error("sensor enumeration failed", zap.Error(err))
		return
	}
	logger.Info("sensors enumerated", zap.Int("count", len(descriptors)))

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	// init Modbus actor provider
	modbusProv, err := modbusActorProvider(cfg, logger)
	if err != nil {
		panic(err)
	}

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, descriptors, modbusProv, mqttActorProvider(cfg, logger), logger)
	})
	pid, err := ctx.SpawnNamed(props, "master")
	if err != nil {
		return
	}

	server := server.NewServer(*cfg, ctx, pid)
	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func initConfig() (*config.Config, error) {

	// alias PORT => LAMBDA_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("LAMBDA_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("lambda")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	// check and fix base topic
	baseTopic, err := config.CheckMQTTTopic(cfg.MQTT.BaseTopic)
	if err != nil {
		return nil, errors.New("invalid base topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.BaseTopic = baseTopic

	// check and fix homeassistant discovery topic
	hadBaseTopic, err := config.CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
	if err != nil {
		return nil, errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.HADiscoveryTopic = hadBaseTopic

	// check bounds
	if cfg.HeatPumpConfig.NumHPs < 1 || cfg.HeatPumpConfig.NumHPs > 3 {
		return nil, errors.New("config param heatpump.num_hps should be between 1 and 3")
	}
	if cfg.HeatPumpConfig.NumBoil < 0 || cfg.HeatPumpConfig.NumBoil > 5 {
		return nil, errors.New("config param heatpump.num_boil should be between 0 and 5")
	}
	if cfg.HeatPumpConfig.NumBuff < 0 || cfg.HeatPumpConfig.NumBuff > 5 {
		return nil, errors.New("config param heatpump.num_buff should be between 0 and 5")
	}
	if cfg.HeatPumpConfig.NumSol < 0 || cfg.HeatPumpConfig.NumSol > 2 {
		return nil, errors.New("config param heatpump.num_sol should be between 0 and 2")
	}
	if cfg.HeatPumpConfig.NumHC < 0 || cfg.HeatPumpConfig.NumHC > 12 {
		return nil, errors.New("config param heatpump.num_hc should be between 0 and 12")
	}
	if cfg.MonitorConfig.PollIntervalMillis < 1000 {
		return nil, errors.New("config param monitor.poll_interval_millis should be >= 1000")
	}
	if cfg.EManagerConfig.Enable && cfg.EManagerConfig.MaxPowerWatt == 0 {
		return nil, errors.New("config param emanager.max_power_watt should be > 0 when emanager is enabled")
	}

	return &cfg, nil
}

func enumerateSensors(cfg *config.Config, logger *zap.Logger) ([]sensor.Descriptor, error) {
	hp := cfg.HeatPumpConfig
	return sensor.Enumerate(sensor.Params{
		Templates:        sensor.DefaultDeviceTemplates(hp.NumHPs, hp.NumBoil, hp.NumBuff, hp.NumSol, hp.NumHC),
		General:          sensor.GeneralTemplates(),
		LegacyNames:      hp.UseLegacyModbusNames,
		NamePrefix:       hp.NamePrefix(),
		Overrides:        hp.SensorOverrides,
		RegisterDisabled: hp.IsRegisterDisabled,
	}, logger)
}

func modbusActorProvider(cfg *config.Config, logger *zap.Logger) (actor.ModbusActorProvider, error) {

	reader, err := lambda_modbus.CreateHeatPumpModbusReader(cfg.ModbusTcpConfig.Host,
		cfg.ModbusTcpConfig.Port, uint8(cfg.ModbusTcpConfig.UnitId), 1*time.Second, logger, nil)

	if err != nil {
		return nil, err
	}

	return func() *adactor.ModbusActor {
		return adactor.NewModbusActor(reader, logger)
	}, nil
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	return func() *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, logger)
	}
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mqtt.ha_discovery_enable", false)
	viper.SetDefault("mqtt.base_topic", "lambdawp")
	viper.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	viper.SetDefault("heatpump.name", "Lambda WP")
	viper.SetDefault("heatpump.num_hps", 1)
	viper.SetDefault("heatpump.num_boil", 1)
	viper.SetDefault("heatpump.num_buff", 0)
	viper.SetDefault("heatpump.num_sol", 0)
	viper.SetDefault("heatpump.num_hc", 1)
	viper.SetDefault("heatpump.use_legacy_modbus_names", false)
	viper.SetDefault("modbus_tcp.port", 502)
	viper.SetDefault("modbus_tcp.unit_id", 1)
	viper.SetDefault("monitor.poll_interval_millis", 30000)
	viper.SetDefault("emanager.enable", false)
	viper.SetDefault("emanager.max_power_watt", 5000)
	viper.SetDefault("port", 8080)
}

func safePrintConfig(cfg config.Config) {
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	slog.Info("Using", "config", cfg)
}
