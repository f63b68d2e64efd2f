package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deskbridge/deskbridge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "deskbridge",
	Short: "Desktop bridge between a host shell and the web client",
	Long: `Deskbridge relays commands and correlated requests between a desktop
host shell and the web application it embeds. The host drives navigation
and site operations over a websocket channel; the client pushes login
state, notification counts, and editor status back.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/deskbridge/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DESKBRIDGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DESKBRIDGE_TRANSPORT_URL for transport.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
