// Package config holds the rgbledctl configuration and its viper bindings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. RGBLED_SERIAL_PORT for serial.port.
const EnvPrefix = "RGBLED"

// Transports that can carry the Wishbone bus.
const (
	TransportSim    = "sim"
	TransportSerial = "serial"
	TransportSPI    = "spi"
	TransportDevMem = "devmem"
)

type Config struct {
	Transport   string         `yaml:"transport" mapstructure:"transport"`
	BaseAddress uint16         `yaml:"base-address" mapstructure:"base-address"`
	Serial      SerialConfig   `yaml:"serial" mapstructure:"serial"`
	SPI         SPIConfig      `yaml:"spi" mapstructure:"spi"`
	DevMem      DevMemConfig   `yaml:"devmem" mapstructure:"devmem"`
	Log         LogConfig      `yaml:"log" mapstructure:"log"`
	Tutorial    TutorialConfig `yaml:"tutorial" mapstructure:"tutorial"`
}

type SerialConfig struct {
	Port        string        `yaml:"port" mapstructure:"port"`
	Baud        int           `yaml:"baud" mapstructure:"baud"`
	ReadTimeout time.Duration `yaml:"read-timeout" mapstructure:"read-timeout"`
}

type SPIConfig struct {
	Port string `yaml:"port" mapstructure:"port"`
	Hz   int64  `yaml:"hz" mapstructure:"hz"`
}

type DevMemConfig struct {
	Base int64 `yaml:"base" mapstructure:"base"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

type TutorialConfig struct {
	StepDelay time.Duration `yaml:"step-delay" mapstructure:"step-delay"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Transport:   TransportSim,
		BaseAddress: rgbled.DefaultBaseAddress,
		Serial: SerialConfig{
			Port:        "/dev/ttyUSB0",
			Baud:        115200,
			ReadTimeout: 100 * time.Millisecond,
		},
		SPI: SPIConfig{
			Hz: 1_000_000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Tutorial: TutorialConfig{
			StepDelay: time.Second,
		},
	}
}

// SetDefaults registers the default configuration with viper.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("transport", d.Transport)
	v.SetDefault("base-address", d.BaseAddress)
	v.SetDefault("serial.port", d.Serial.Port)
	v.SetDefault("serial.baud", d.Serial.Baud)
	v.SetDefault("serial.read-timeout", d.Serial.ReadTimeout)
	v.SetDefault("spi.port", d.SPI.Port)
	v.SetDefault("spi.hz", d.SPI.Hz)
	v.SetDefault("devmem.base", d.DevMem.Base)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tutorial.step-delay", d.Tutorial.StepDelay)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// BindFlags binds command line flags to their configuration keys.
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	bindings := map[string]string{
		"transport":    "transport",
		"base-address": "base-address",
		"serial-port":  "serial.port",
		"baud":         "serial.baud",
		"spi-port":     "spi.port",
		"spi-hz":       "spi.hz",
		"devmem-base":  "devmem.base",
		"log-level":    "log.level",
	}
	for flag, key := range bindings {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads the configuration file (if any) and decodes the merged configuration.
func Load(v *viper.Viper, path string) (Config, humane.Error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, humane.Wrap(err, "failed to read config file",
				fmt.Sprintf("ensure %s exists and is valid YAML", path),
				"create one with 'rgbledctl config init'",
			)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, humane.Wrap(err, "failed to decode configuration",
			"check the types of the values in your config file and environment",
		)
	}

	if herr := cfg.Validate(); herr != nil {
		return Config{}, herr
	}
	return cfg, nil
}

// Validate checks the configuration for values the transports cannot work with.
func (c Config) Validate() humane.Error {
	switch c.Transport {
	case TransportSim, TransportDevMem:
	case TransportSerial:
		if c.Serial.Port == "" {
			return humane.New("no serial port configured",
				"set serial.port in the config file or pass --serial-port",
			)
		}
		if c.Serial.Baud <= 0 {
			return humane.New(fmt.Sprintf("invalid baud rate %d", c.Serial.Baud),
				"set serial.baud to the bridge's baud rate, e.g. 115200",
			)
		}
	case TransportSPI:
		if c.SPI.Hz <= 0 {
			return humane.New(fmt.Sprintf("invalid SPI clock rate %d", c.SPI.Hz),
				"set spi.hz to a positive clock rate, e.g. 1000000",
			)
		}
	default:
		return humane.New(fmt.Sprintf("unknown transport %q", c.Transport),
			fmt.Sprintf("use one of %s, %s, %s or %s", TransportSim, TransportSerial, TransportSPI, TransportDevMem),
		)
	}

	if c.BaseAddress > 0xFFFF-rgbled.RegCtrl {
		return humane.New(fmt.Sprintf("base address 0x%04x leaves no room for the controller registers", c.BaseAddress),
			fmt.Sprintf("use a base address of at most 0x%04x", 0xFFFF-rgbled.RegCtrl),
		)
	}
	return nil
}

// WriteDefault writes the default configuration as YAML. Existing files are not overwritten.
func WriteDefault(path string) humane.Error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return humane.Wrap(err, "failed to encode default configuration",
			"this should never happen, please report this as a bug",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return humane.Wrap(err, "failed to create config directory",
			"ensure the directory you are trying to create exists and is writable",
		)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return humane.Wrap(err, "failed to create config file",
			fmt.Sprintf("remove %s first if you want to replace it", path),
		)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return humane.Wrap(err, "failed to write config file",
			"ensure there is enough space on the device",
		)
	}
	return nil
}
