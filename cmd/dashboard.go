package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/scheduler"
	"github.com/dosewatch/dosewatch/internal/tui"
)

// dashboardCmd launches the interactive dashboard.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Launch the interactive dashboard",
	Long: `Launch a terminal dashboard showing today's doses and any pending
reminder. Doses can be taken, skipped, or snoozed from the keyboard.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(ctx.WebhookRepo)
	checker := scheduler.NewDoseChecker(ctx.MedicineRepo, ctx.DoseLogRepo, ctx.NotifyConfigRepo, dispatcher)
	checker.Start()
	defer checker.CancelAllSnoozes()

	return tui.Run(tui.DashboardConfig{
		MedicineRepo: ctx.MedicineRepo,
		DoseLogRepo:  ctx.DoseLogRepo,
		Checker:      checker,
	})
}
