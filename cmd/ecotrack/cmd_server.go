package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecotrackhq/ecotrack/internal/kernel"
	"github.com/ecotrackhq/ecotrack/internal/server"
	"github.com/ecotrackhq/ecotrack/pkg/database"
)

// ecotrack serve — start the API server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// ecotrack route:list — print the routing table.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered API routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		infos := kernel.NewHTTPKernel(database.DB).Router().Routes()
		if len(infos) == 0 {
			fmt.Println("No routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
