package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
)

// Export/import command flags.
var (
	exportFlagOutput string
	importFlagMerge  bool
	importFlagForce  bool
)

// backupFile is the on-disk backup format.
type backupFile struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Patient    *model.Patient    `json:"patient,omitempty"`
	Medicines  []*model.Medicine `json:"medicines"`
	DoseLogs   []*model.DoseLog  `json:"dose_logs"`
	Webhooks   []*model.Webhook  `json:"webhooks,omitempty"`
}

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"backup"},
	Short:   "Export all data as JSON",
	Long: `Export the patient profile, medicines, dose logs, and webhooks as a
single JSON document.

Examples:
  dosewatch export
  dosewatch export -o backup.json`,
	RunE: runExport,
}

// importCmd restores data from an export file.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"restore"},
	Short:   "Import data from an export file",
	Long: `Import a JSON export. By default existing data is replaced, which
requires --force to confirm; with --merge imported records are added
alongside what is already stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	importCmd.Flags().BoolVar(&importFlagMerge, "merge", false, "Keep existing data and add imported records")
	importCmd.Flags().BoolVar(&importFlagForce, "force", false, "Skip confirmation when replacing existing data")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	patient, err := ctx.PatientRepo.Get()
	if err != nil {
		return err
	}

	medicines, err := ctx.MedicineRepo.List()
	if err != nil {
		return err
	}

	logs, err := ctx.DoseLogRepo.List()
	if err != nil {
		return err
	}

	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	backup := backupFile{
		Version:    "1",
		ExportedAt: time.Now().Format(time.RFC3339),
		Patient:    patient,
		Medicines:  medicines,
		DoseLogs:   logs,
		Webhooks:   webhooks,
	}

	var writer *os.File
	if exportFlagOutput != "" {
		f, err := os.Create(exportFlagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		writer = f
	} else {
		writer = os.Stdout
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return err
	}

	if exportFlagOutput != "" && !ctx.IsJSON() {
		cli := ctx.CLIFormatter()
		cli.Success("Export created: " + exportFlagOutput)
		cli.Printf("  Medicines: %d\n", len(medicines))
		cli.Printf("  Dose logs: %d\n", len(logs))
		cli.Printf("  Webhooks: %d\n", len(webhooks))
	}

	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var backup backupFile
	if err := json.Unmarshal(data, &backup); err != nil {
		return apperrors.NewUserError(
			"could not parse import file: "+err.Error(),
			"Expected a JSON file produced by 'dosewatch export'.",
		)
	}

	if !importFlagMerge {
		if !importFlagForce {
			return apperrors.NewUserError(
				"import replaces the patient profile, all medicines, and all dose logs",
				"Re-run with --force to confirm, or use --merge to keep existing data.",
			)
		}
		if _, err := ctx.MedicineRepo.DeleteAll(); err != nil {
			return err
		}
		if _, err := ctx.DoseLogRepo.DeleteAll(); err != nil {
			return err
		}
		if err := ctx.PatientRepo.Clear(); err != nil {
			return err
		}
	}

	if backup.Patient != nil {
		if err := ctx.PatientRepo.Save(backup.Patient); err != nil {
			return err
		}
	}

	for _, m := range backup.Medicines {
		if err := ctx.MedicineRepo.Create(m); err != nil {
			return err
		}
	}

	for _, l := range backup.DoseLogs {
		if err := ctx.DB.Set(l); err != nil {
			return err
		}
	}

	for _, w := range backup.Webhooks {
		if err := ctx.WebhookRepo.Create(w); err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":    "imported",
			"medicines": len(backup.Medicines),
			"dose_logs": len(backup.DoseLogs),
			"webhooks":  len(backup.Webhooks),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Imported " + args[0])
	cli.Printf("  Medicines: %d\n", len(backup.Medicines))
	cli.Printf("  Dose logs: %d\n", len(backup.DoseLogs))
	cli.Printf("  Webhooks: %d\n", len(backup.Webhooks))
	return nil
}
