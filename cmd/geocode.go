package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/dstk-geocoder/pkg/geocode"
)

var geocodeFormat string

var geocodeCmd = &cobra.Command{
	Use:   "geocode <address or IPv4>",
	Short: "Geocode a street address or IPv4 literal",
	Long:  "Geocode a street address or IPv4 literal. Multiple arguments are joined with spaces.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("geocode"); err != nil {
			return err
		}
		return runGeocode(cmd, newProvider(cfg), strings.Join(args, " "), geocodeFormat)
	},
}

func runGeocode(cmd *cobra.Command, p geocode.Provider, query, format string) error {
	results, err := p.Geocode(cmd.Context(), query)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), results, format)
}

// writeResults renders locations as indented JSON or YAML.
func writeResults(w io.Writer, results []geocode.Location, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(results), "write json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "write yaml")
		}
		return eris.Wrap(enc.Close(), "close yaml encoder")
	default:
		return eris.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func init() {
	geocodeCmd.Flags().StringVarP(&geocodeFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(geocodeCmd)
}
