package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

// Exit codes.
const (
	exitError   = 1
	exitInvalid = 2
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reelplan",
		Short:         "Plan short-form vertical videos from a topic or script",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.AddCommand(newPlanCmd(), newServeCmd())
	return root
}

func exitCode(err error) int {
	var (
		validation  *types.ValidationError
		composition *types.CompositionError
	)
	if errors.As(err, &validation) || errors.As(err, &composition) {
		return exitInvalid
	}
	return exitError
}
