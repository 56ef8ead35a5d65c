package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	verrors "github.com/verbosity-dev/verbosity/internal/errors"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

func matchCmd(configPath *string) *cobra.Command {
	var navigate bool

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Show which route a path resolves to",
		Long: `Show which route a path resolves to and the parameters it
extracts. With --navigate, the navigation is run against an
in-memory page so guard redirects are followed.

Examples:
  verbosity match /users/42
  verbosity match /old --navigate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			path := args[0]
			out := cmd.OutOrStdout()
			rec := dom.NewRecorder()
			history := router.NewMemoryHistory()
			app := newApp(cfg, rec, history)
			defer app.Close()

			if !navigate {
				route, params, ok := app.Router().Match(path)
				if !ok {
					return verrors.New("E100").
						WithDetailf("no route matches %q", path).
						Wrap(router.ErrNoRoute)
				}
				printMatch(out, path, route, params)
				return nil
			}

			if err := app.Start(serveContext(cmd.Context()), path); err != nil {
				return err
			}
			final, _ := history.State()
			route, params, _ := app.Router().Match(final)
			if final != path {
				fmt.Fprintf(out, "%s redirected to %s\n", path, final)
			}
			printMatch(out, final, route, params)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&navigate, "navigate", "n", false, "Run the navigation, following guard redirects")
	return cmd
}

func printMatch(out io.Writer, path string, route router.Route, params router.Params) {
	fmt.Fprintf(out, "%s matches %s (%s)\n", path, bold.Sprint(route.Pattern()), route.Matcher.Kind())

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %s\n", k, params[k])
	}
}
