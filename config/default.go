package config

import (
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/spf13/viper"
)

func setDefaultConfig() {
	viper.SetDefault("Data.LogConfig.EnableConsole", true)
	viper.SetDefault("Data.LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("Data.LogConfig.ConsoleLevel", "debug")
	viper.SetDefault("Data.LogConfig.EnableFile", true)
	viper.SetDefault("Data.LogConfig.FileJSONFormat", true)
	viper.SetDefault("Data.LogConfig.FileLevel", "debug")
	viper.SetDefault("Data.LogConfig.FileLocation", "./herald.log")
	viper.SetDefault("Data.Env", "prod")
	viper.SetDefault("Data.Port", "9877")
	viper.SetDefault("Data.Verbose", true)
	viper.SetDefault("Data.FrontendURL", "")
	viper.SetDefault("Data.JWT.Timeout", constants.DefaultJWTTimeout)
	viper.SetDefault("Data.Delivery.Mode", constants.DeliveryModeDirect)
	viper.SetDefault("Data.Delivery.DescriptionPrefix", constants.DefaultDescriptionPrefix)
	viper.SetDefault("Data.Delivery.Attempts", constants.DefaultDeliveryAttempts)
	viper.SetDefault("Data.Delivery.Delay", constants.DefaultDeliveryDelay)
	viper.SetDefault("Data.Delivery.MaxJitter", constants.DefaultDeliveryMaxJitter)
	viper.SetDefault("Data.Delivery.DedupeTTL", constants.DefaultDedupeTTL)
	viper.SetDefault("Data.GracefulTimeout", constants.DefaultGracefulTimeout)
	viper.SetDefault("Data.ShutDownDelay", constants.DefaultShutDownDelay)
}
