package cmd

import (
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringP("port", "p", "", "port on which the http server listens")
	rootCmd.PersistentFlags().StringP("env", "e", "", "environment: dev, stage or prod")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().String("log-file", "", "directory of the log file")
	rootCmd.PersistentFlags().String("delivery-mode", "", "commit status delivery: direct or queue")
	rootCmd.PersistentFlags().String("kafka-brokers", "", "comma separated kafka broker addresses")
}
