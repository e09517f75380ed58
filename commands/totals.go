package commands

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/penwyp/go-eld-log/internal/viewer"
	"github.com/spf13/cobra"
)

// totalsTolerance absorbs rounding in planner totals, which carry one decimal.
const totalsTolerance = 0.05

var totalsCmd = &cobra.Command{
	Use:   "totals [FILE...]",
	Short: "Compare recorded hour totals with the hours drawn on the grid",
	Long: `Lists, per daily log, the hours the trip planner recorded for each duty status
next to the hours actually covered by the drawn segments (recorded/drawn).
Cells where the two differ are highlighted.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)
}

func runTotals(cmd *cobra.Command, args []string) error {
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
	return writeTotals(cmd.OutOrStdout(), sheets)
}

func writeTotals(w io.Writer, sheets []formatter.Sheet) error {
	if len(sheets) == 0 {
		_, err := fmt.Fprintln(w, formatter.NoLogsMessage)
		return err
	}

	const dateWidth = 12
	const cellWidth = 16
	highlight := color.New(color.FgRed, color.Bold)

	var sb strings.Builder
	sb.WriteString(util.PadString("Date", dateWidth, true))
	for _, c := range model.Categories {
		sb.WriteString(util.PadString(c.Label(), cellWidth, true))
	}
	sb.WriteString("\n")

	mismatched := 0
	for _, sheet := range sheets {
		sb.WriteString(util.PadString(util.FormatDate(sheet.Log.Date), dateWidth, true))
		differs := false
		for _, c := range model.Categories {
			recorded, drawn := sheet.Recorded.Get(c), sheet.Drawn.Get(c)
			cell := util.PadString(util.FormatHours(recorded)+"/"+util.FormatHours(drawn), cellWidth, true)
			if math.Abs(recorded-drawn) > totalsTolerance {
				differs = true
				cell = highlight.Sprint(cell)
			}
			sb.WriteString(cell)
		}
		if differs {
			mismatched++
		}
		sb.WriteString("\n")
	}

	if mismatched > 0 {
		fmt.Fprintf(&sb, "\nDrawn hours differ from recorded totals on %d of %d logs\n", mismatched, len(sheets))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
