package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/dstk-geocoder/pkg/geocode"
)

var reverseFormat string

var reverseCmd = &cobra.Command{
	Use:   "reverse <lat> <lng>",
	Short: "Reverse geocode a coordinate pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReverse(cmd, newProvider(cfg), args[0], args[1], reverseFormat)
	},
}

func runReverse(cmd *cobra.Command, p geocode.Provider, latArg, lngArg, format string) error {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return eris.Wrapf(err, "parse latitude %q", latArg)
	}
	lng, err := strconv.ParseFloat(lngArg, 64)
	if err != nil {
		return eris.Wrapf(err, "parse longitude %q", lngArg)
	}

	results, err := p.Reverse(cmd.Context(), lat, lng)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), results, format)
}

func init() {
	reverseCmd.Flags().StringVarP(&reverseFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(reverseCmd)
}
