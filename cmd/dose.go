package cmd

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/parser"
)

var (
	doseFlagDate string
)

// takeCmd records a dose as taken.
var takeCmd = &cobra.Command{
	Use:   "take MEDICINE [TIME]",
	Short: "Record a dose as taken",
	Long: `Record that a dose was taken. The medicine can be referenced by short
ID or name. When TIME is omitted, the scheduled time nearest to now is
used. Recording the same dose again replaces the earlier entry.

Examples:
  dosewatch take aspirin
  dosewatch take aspirin 09:00
  dosewatch take aspirin 21:00 --date yesterday`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDose(cmd, args, true)
	},
}

// skipCmd records a dose as skipped.
var skipCmd = &cobra.Command{
	Use:   "skip MEDICINE [TIME]",
	Short: "Record a dose as skipped",
	Long: `Record that a dose was deliberately skipped. A skipped dose is settled:
it will not raise reminders and does not count against adherence as a
missed response.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDose(cmd, args, false)
	},
}

func init() {
	takeCmd.Flags().StringVar(&doseFlagDate, "date", "", "Date of the dose (default: today)")
	skipCmd.Flags().StringVar(&doseFlagDate, "date", "", "Date of the dose (default: today)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(skipCmd)
}

func runDose(cmd *cobra.Command, args []string, taken bool) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	medicine, err := ctx.MedicineRepo.Resolve(args[0])
	if err != nil {
		return err
	}
	ctx.Debugf("resolved %q to %s", args[0], medicine.Key)

	now := time.Now()
	date, err := parser.ParseDate(doseFlagDate, now)
	if err != nil {
		return err
	}

	var clock string
	if len(args) > 1 {
		clock, err = parser.NormalizeClock(args[1])
		if err != nil {
			return err
		}
		if !medicine.HasTime(clock) {
			return apperrors.NewUserErrorWithField(
				"time", clock,
				clock+" is not on "+medicine.Name+"'s schedule",
				"Scheduled times: "+joinTimes(medicine.Times),
			)
		}
	} else {
		clock, err = nearestScheduledTime(medicine, now)
		if err != nil {
			return err
		}
	}

	entry, err := ctx.DoseLogRepo.Log(medicine.Key, date, clock, taken)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		status := "skipped"
		if taken {
			status = "taken"
		}
		return ctx.Formatter.JSON(output.DoseResponse{
			Status:   status,
			Medicine: output.NewMedicineOutput(medicine),
			Log:      output.NewDoseLogOutput(entry),
		})
	}

	ctx.CLIFormatter().PrintDoseLogged(medicine, entry)
	return nil
}

// nearestScheduledTime picks the medicine's scheduled time closest to now.
func nearestScheduledTime(medicine *model.Medicine, now time.Time) (string, error) {
	if len(medicine.Times) == 0 {
		return "", apperrors.NewUserError(
			medicine.Name+" has no scheduled times",
			"Add one with 'dosewatch medicine edit "+medicine.ShortID()+" --times HH:MM'.",
		)
	}

	nowMinutes := parser.MinutesOfDay(now)
	best := medicine.Times[0]
	bestDiff := -1

	for _, clock := range medicine.Times {
		scheduled, err := parser.ParseClock(clock)
		if err != nil {
			continue
		}
		diff := nowMinutes - scheduled
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = clock
			bestDiff = diff
		}
	}
	return best, nil
}

func joinTimes(times []string) string {
	s := ""
	for i, t := range times {
		if i > 0 {
			s += ", "
		}
		s += t
	}
	return s
}
