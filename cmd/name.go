package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/dstk-geocoder/pkg/geocode"
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Print the provider identifier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), geocode.NewDataScienceToolkit(nil).Name())
		return err
	},
}

func init() { rootCmd.AddCommand(nameCmd) }
