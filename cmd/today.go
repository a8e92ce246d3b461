package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/storage"
)

var todayFlagDate string

// todayCmd shows the dose schedule for a day.
var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"schedule"},
	Short:   "Show the dose schedule for today",
	Long: `Show every scheduled dose for the day with its current status.

Examples:
  dosewatch today
  dosewatch today --date tomorrow
  dosewatch today --date 2026-03-15`,
	RunE: runToday,
}

func init() {
	todayCmd.Flags().StringVarP(&todayFlagDate, "date", "d", "",
		"Date to show (default: today; accepts natural language)")
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	now := time.Now()
	date, err := parser.ParseDate(todayFlagDate, now)
	if err != nil {
		return err
	}

	medicines, err := ctx.MedicineRepo.ListActiveOn(date)
	if err != nil {
		return err
	}

	logs, err := ctx.DoseLogRepo.ListByDate(date)
	if err != nil {
		return err
	}

	doses := storage.BuildDaySchedule(medicines, logs, date, now)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewScheduleResponse(date, doses))
	}

	cli := ctx.CLIFormatter()
	cli.PrintSchedule(date, doses)

	if summary := storage.Adherence(logs); summary.Logged > 0 {
		cli.Println("")
		cli.PrintAdherence("Today", summary)
	}
	return nil
}
