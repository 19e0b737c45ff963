package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackielii/pageswap"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), pageswap.PrintRoutes(pageswap.DefaultRoutes()))
		return err
	},
}
