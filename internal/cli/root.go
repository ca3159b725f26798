package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/disclosure-metrics/disclo/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "disclo",
	Short: "Disclo - disclosure evidence reconciliation and reporting",
	Long: `Disclo reconciles independently produced disclosure evidence records
into one canonical dataset per company-year and computes the percentage
tables used for reporting.

It merges upstream extraction passes with the human review sheet,
applies reviewer overrides and removals, and tracks exactly what
changed along the way. It does not perform the original extraction or
classification; upstream processes supply classified records.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("disclo v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.disclo/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and DISCLO_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.disclo")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("DISCLO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig merges defaults with config file and flag values
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("ingest.sheet") {
		cfg.Ingest.Sheet = viper.GetString("ingest.sheet")
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
	if viper.IsSet("output.collapsed") {
		cfg.Output.Collapsed = viper.GetBool("output.collapsed")
	}
	if viper.IsSet("output.version") {
		cfg.Output.Version = viper.GetString("output.version")
	}
	if viper.IsSet("output.model_used") {
		cfg.Output.ModelUsed = viper.GetString("output.model_used")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("batch.workers") {
		cfg.Batch.Workers = viper.GetInt("batch.workers")
	}
	cfg.Output.Verbose = verbose

	return cfg
}
