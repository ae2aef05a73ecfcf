package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/dstk-geocoder/internal/config"
	"github.com/sells-group/dstk-geocoder/pkg/geocode"
)

var (
	cfg *config.Config

	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "dstk-geocoder",
	Short: "Geocode addresses and IPv4 literals through DataScienceToolkit",
	Long:  "Forwards a street address or IPv4 literal to the DataScienceToolkit API and prints a normalized location record.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if cmd.Flags().Changed("log-level") {
			c.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			c.Log.Format = logFormat
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.L().Debug("config loaded",
			zap.String("dstk_base_url", cfg.DSTK.BaseURL),
			zap.Duration("dstk_timeout", cfg.DSTK.Timeout()),
		)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// newProvider builds the DataScienceToolkit provider from the loaded config.
func newProvider(c *config.Config) *geocode.DataScienceToolkit {
	tr := geocode.NewHTTPTransport(
		geocode.WithTimeout(c.DSTK.Timeout()),
		geocode.WithUserAgent(c.DSTK.UserAgent),
	)
	return geocode.NewDataScienceToolkit(tr, geocode.WithBaseURL(c.DSTK.BaseURL))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log.format (json or console)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
