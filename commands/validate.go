package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/penwyp/go-eld-log/internal/viewer"
	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [FILE...]",
	Short: "Report duty status entries that cannot be drawn as given",
	Long: `Builds the segments of every daily log and lists the entries that were skipped
or adjusted: missing fields, unreadable times, unknown statuses and
zero-length entries. With --strict any issue makes the command fail.`,
	Args: cobra.ArbitraryArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"Exit with an error when any issue is found")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer util.CloseLogger()

	v, err := viewer.New(cfg)
	if err != nil {
		return err
	}
	sheets, err := v.Sheets()
	if err != nil {
		return err
	}

	count := writeIssues(cmd.OutOrStdout(), sheets)
	if validateStrict && count > 0 {
		return fmt.Errorf("found %d issues", count)
	}
	return nil
}

// writeIssues lists the issues of each log and returns how many there were.
func writeIssues(w io.Writer, sheets []formatter.Sheet) int {
	if len(sheets) == 0 {
		fmt.Fprintln(w, formatter.NoLogsMessage)
		return 0
	}

	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	total, affected := 0, 0
	for _, sheet := range sheets {
		date := util.FormatDate(sheet.Log.Date)
		if len(sheet.Issues) == 0 {
			fmt.Fprintf(w, "%s  %s\n", date, ok.Sprint("ok"))
			continue
		}
		affected++
		total += len(sheet.Issues)
		fmt.Fprintf(w, "%s  %s\n", date, warn.Sprintf("%d issues", len(sheet.Issues)))
		for _, issue := range sheet.Issues {
			fmt.Fprintf(w, "  %s\n", issue.String())
		}
	}

	fmt.Fprintf(w, "\n%d issues in %d of %d logs\n", total, affected, len(sheets))
	return total
}
