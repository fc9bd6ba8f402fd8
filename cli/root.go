// File: /cli/root.go
package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"carservice-api/config"
	"carservice-api/database"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "carservice-api",
	Short: "Car maintenance tracking API",
	Long: `carservice-api keeps the service history of your cars and reminds
owners by email when maintenance is due.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		config.ConfigureLogging(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openDatabase() (*gorm.DB, error) {
	return database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
}
