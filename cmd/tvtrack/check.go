package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/tvtrack/internal/checker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check all tracked shows and movies and email the digest",
	Long: `Looks up every tracked show and movie, prints what is new, and sends one
digest email when there are new episodes or a movie releases today or within
30 days. Same as 'tvtrack --auto'.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	return checkAndReport(cmd.Context(), a.checker(), cmd.OutOrStdout())
}

// reportRunner is satisfied by *checker.Checker.
type reportRunner interface {
	Run(ctx context.Context) (*checker.Report, error)
}

// checkAndReport runs a check and prints the result. A failed email is
// reported but is not an error: the check itself succeeded.
func checkAndReport(ctx context.Context, c reportRunner, w io.Writer) error {
	report, err := c.Run(ctx)
	if report != nil {
		printReport(w, report)
	}
	if errors.Is(err, checker.ErrNotifyFailed) {
		fmt.Fprintf(w, "%s %v\n", warnText("Email not sent:"), err)
		return nil
	}
	return err
}
