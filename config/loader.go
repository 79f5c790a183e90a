package config

import (
	"fmt"
	"strings"

	"github.com/LambdaTest/herald/pkg/constants"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GlobalConfig stores the config instance for global use
var GlobalConfig *Config

// flagKeys maps the command line flags to the config keys they override.
var flagKeys = map[string]string{
	"port":          "Data.Port",
	"env":           "Data.Env",
	"verbose":       "Data.Verbose",
	"log-file":      "Data.LogFile",
	"delivery-mode": "Data.Delivery.Mode",
	"kafka-brokers": "Data.Kafka.Brokers",
}

// Load loads config from command instance to predefined config variables
func Load(cmd *cobra.Command) (*Config, error) {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return nil, err
		}
	}

	// default viper configs
	viper.SetEnvPrefix("HERALD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// set default configs
	setDefaultConfig()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".herald")
		viper.AddConfigPath("./")
		viper.AddConfigPath("/vault/secrets")
	}

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Warning: No configuration file found. Proceeding with defaults")
	}

	return populateConfig(new(ConfigWrapper))
}

// populateConfig decodes the viper settings by the json tags of the config
// model. Durations are accepted as "5s" style strings or nanoseconds.
func populateConfig(wrapper *ConfigWrapper) (*Config, error) {
	if err := viper.Unmarshal(wrapper, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return nil, err
	}
	cfg := &wrapper.Config
	if err := validate(cfg); err != nil {
		return nil, err
	}
	GlobalConfig = cfg
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Delivery.Mode {
	case constants.DeliveryModeDirect, constants.DeliveryModeQueue:
	default:
		return errs.ErrInvalidDeliveryMode
	}
	if cfg.Delivery.Mode == constants.DeliveryModeQueue &&
		(cfg.Kafka.Brokers == "" || cfg.Kafka.StatusQueueConfig.Topic == "") {
		return errs.ErrMissingStatusQueue
	}
	if cfg.Delivery.Attempts == 0 {
		cfg.Delivery.Attempts = 1
	}
	return nil
}
