// Command verbosity serves verbosity applications declared in
// verbosity.json and inspects their routes.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	verrors "github.com/verbosity-dev/verbosity/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		verrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "verbosity",
		Short: "Single-page routing served over WebSocket",
		Long: `verbosity serves single-page applications whose routing runs on
the server. Routes are declared in verbosity.json; the browser
loads a shell page and a small client that applies the views
the server mounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "Project directory or path to verbosity.json")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		matchCmd(&configPath),
		routesCmd(&configPath),
		versionCmd(),
	)
	return rootCmd
}

var (
	green = color.New(color.FgGreen)
	bold  = color.New(color.Bold)
)

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	green.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}
