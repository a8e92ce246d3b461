package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/scheduler"
)

// watchCmd runs the reminder engine in the foreground.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder engine in the foreground",
	Long: `Watch the schedule and raise reminders as doses come due. Every minute
each active medicine is scanned; a dose whose scheduled time is within a
minute of now and has no log yet triggers a notification to the
configured webhooks.

Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(ctx.WebhookRepo)
	checker := scheduler.NewDoseChecker(ctx.MedicineRepo, ctx.DoseLogRepo, ctx.NotifyConfigRepo, dispatcher)
	sched := scheduler.New(checker)

	if err := sched.Start(); err != nil {
		return err
	}

	cli := ctx.CLIFormatter()
	cli.Success("Watching for due doses. Press Ctrl+C to stop.")
	if p := checker.Pending(); p != nil {
		cli.PrintPendingReminder(p.MedicineName, p.Dosage, p.Time)
	}
	if !dispatcher.HasEnabledChannels() {
		cli.Muted("No webhooks configured; reminders will only be visible in the dashboard.")
		cli.Muted("Add one with 'dosewatch webhook add NAME URL'.")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sched.Stop()
	cli.Println("")
	cli.Muted("Stopped.")
	return nil
}
