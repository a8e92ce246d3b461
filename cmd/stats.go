package cmd

import (
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/storage"
)

var statsFlagDays int

// statsCmd shows adherence statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show adherence statistics",
	Long: `Show how consistently doses were taken over a recent window.

Only logged doses count: a dose that was never responded to is neither
taken nor skipped.

Examples:
  dosewatch stats
  dosewatch stats --days 30`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsFlagDays, "days", "d", 7,
		"Number of days to include, ending today")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	now := time.Now()
	to := parser.Today(now)
	from := parser.Today(now.AddDate(0, 0, -(statsFlagDays - 1)))

	logs, err := ctx.DoseLogRepo.ListBetween(from, to)
	if err != nil {
		return err
	}

	overall := storage.Adherence(logs)
	byMedicine := storage.AdherenceByMedicine(logs)

	if ctx.IsJSON() {
		resp := &output.StatsResponse{
			From:       from,
			To:         to,
			Overall:    output.NewAdherenceOutput(overall),
			ByMedicine: make(map[string]*output.AdherenceOutput, len(byMedicine)),
		}
		for key, summary := range byMedicine {
			resp.ByMedicine[key] = output.NewAdherenceOutput(summary)
		}
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Adherence " + from + " to " + to)
	cli.PrintAdherence("Overall", overall)

	if len(byMedicine) > 0 {
		cli.Println("")
		for _, row := range adherenceRows(byMedicine, ctx.MedicineRepo) {
			cli.PrintAdherence(row.name, row.summary)
		}
	}
	return nil
}

type adherenceRow struct {
	name    string
	summary storage.AdherenceSummary
}

// adherenceRows resolves medicine names and orders rows alphabetically so
// repeated runs print the same listing.
func adherenceRows(byMedicine map[string]storage.AdherenceSummary, medicines *storage.MedicineRepo) []adherenceRow {
	rows := make([]adherenceRow, 0, len(byMedicine))
	for key, summary := range byMedicine {
		name := key
		if medicine, err := medicines.Get(key); err == nil {
			name = medicine.Name
		}
		rows = append(rows, adherenceRow{name: name, summary: summary})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})
	return rows
}
