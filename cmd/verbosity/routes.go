package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

func routesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routes in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			app := newApp(cfg, dom.NewRecorder(), router.NewMemoryHistory())
			defer app.Close()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Pattern", "Kind", "Params", "Redirect"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			table.SetHeaderLine(false)
			table.SetColumnSeparator("")
			table.SetCenterSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetTablePadding("  ")
			table.SetNoWhiteSpace(true)

			for i, route := range app.Router().Routes() {
				var params []string
				if pm, ok := route.Matcher.(*router.ParamMatcher); ok {
					params = pm.ParamNames()
				}
				// Routes are registered in config order.
				redirect := orDash(cfg.Routes[i].Redirect)
				table.Append([]string{
					strconv.Itoa(i + 1),
					route.Pattern(),
					route.Matcher.Kind().String(),
					orDash(strings.Join(params, ",")),
					redirect,
				})
			}
			table.Render()
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
