package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	httptransport "github.com/spec-kit/coffee-shop-service/internal/api/http"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the dispatch table in match order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printRoutes(cmd.OutOrStdout(), httptransport.RouteTable(httptransport.RouteConfig{}))
	},
}

func printRoutes(out io.Writer, routes []httptransport.Route) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATTERN\tNAME\tBODY")
	fmt.Fprintln(w, "------\t-------\t----\t----")
	fmt.Fprintln(w, "OPTIONS\t*\tpreflight\t-")
	for _, r := range routes {
		bodied := "-"
		if r.Body {
			bodied = "json"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Method, r.Pattern, r.Name, bodied)
	}
	return w.Flush()
}
