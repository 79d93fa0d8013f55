// The pehnava CLI runs the API server and database maintenance tasks:
//
//	pehnava serve       # start the HTTP server
//	pehnava db:index    # ensure Mongo indexes
//	pehnava db:seed     # run registered seeders
//	pehnava route:list  # list named API routes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pehnava",
	Short: "Pehnava virtual try-on commerce backend",
	Long:  "Pehnava is a multi-tenant commerce backend with virtual try-on analytics. Sellers share one catalogue and one order book; every seller-facing read is scoped to their own products.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(dbIndexCmd)
	rootCmd.AddCommand(dbSeedCmd)
}
