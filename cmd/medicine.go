package cmd

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/validate"
)

// Medicine command flags.
var (
	medicineAddFlagDosage       string
	medicineAddFlagFreq         string
	medicineAddFlagTimes        []string
	medicineAddFlagStart        string
	medicineAddFlagEnd          string
	medicineAddFlagInstructions string
	medicineAddFlagColor        string

	medicineEditFlagName         string
	medicineEditFlagDosage       string
	medicineEditFlagFreq         string
	medicineEditFlagTimes        []string
	medicineEditFlagStart        string
	medicineEditFlagEnd          string
	medicineEditFlagInstructions string
	medicineEditFlagColor        string

	medicineDeleteFlagForce bool
)

// medicineCmd represents the medicine command.
var medicineCmd = &cobra.Command{
	Use:     "medicine [command]",
	Aliases: []string{"medicines", "med", "meds"},
	Short:   "Manage medicines and their schedules",
	Long: `Add, list, edit, and remove medicines. Medicines can be referenced by
their short ID or by name (case-insensitive).

Examples:
  dosewatch medicine add Aspirin --dosage 100mg --times 09:00,21:00
  dosewatch medicine add Metformin --freq twice-daily
  dosewatch medicine list
  dosewatch medicine show aspirin
  dosewatch medicine edit aspirin --dosage 200mg
  dosewatch medicine delete aspirin --force`,
	RunE: runMedicineList,
}

// medicineAddCmd adds a new medicine.
var medicineAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new medicine",
	Long: `Add a medicine to the schedule.

When --times is omitted, default times are derived from the frequency:
daily 09:00; twice-daily 09:00 and 21:00; three-times-daily 08:00,
14:00, and 20:00; weekly 09:00.`,
	Args: cobra.ExactArgs(1),
	RunE: runMedicineAdd,
}

// medicineListCmd lists all medicines.
var medicineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all medicines",
	RunE:    runMedicineList,
}

// medicineShowCmd shows a single medicine.
var medicineShowCmd = &cobra.Command{
	Use:   "show MEDICINE",
	Short: "Show a medicine's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runMedicineShow,
}

// medicineEditCmd edits an existing medicine.
var medicineEditCmd = &cobra.Command{
	Use:   "edit MEDICINE",
	Short: "Edit a medicine",
	Args:  cobra.ExactArgs(1),
	RunE:  runMedicineEdit,
}

// medicineDeleteCmd deletes a medicine and its dose logs.
var medicineDeleteCmd = &cobra.Command{
	Use:     "delete MEDICINE",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a medicine and all its dose logs",
	Args:    cobra.ExactArgs(1),
	RunE:    runMedicineDelete,
}

func init() {
	medicineAddCmd.Flags().StringVarP(&medicineAddFlagDosage, "dosage", "d", "", "Dosage, e.g. 100mg")
	medicineAddCmd.Flags().StringVar(&medicineAddFlagFreq, "freq", string(model.FreqDaily),
		"Frequency: daily, twice-daily, three-times-daily, weekly")
	medicineAddCmd.Flags().StringSliceVarP(&medicineAddFlagTimes, "times", "t", nil,
		"Dose times as HH:MM (defaults derived from frequency)")
	medicineAddCmd.Flags().StringVar(&medicineAddFlagStart, "start", "", "Start date (YYYY-MM-DD or natural language)")
	medicineAddCmd.Flags().StringVar(&medicineAddFlagEnd, "end", "", "End date (YYYY-MM-DD or natural language)")
	medicineAddCmd.Flags().StringVar(&medicineAddFlagInstructions, "instructions", "", "Instructions, e.g. 'with food'")
	medicineAddCmd.Flags().StringVar(&medicineAddFlagColor, "color", "", "Hex color (#RRGGBB)")

	medicineEditCmd.Flags().StringVar(&medicineEditFlagName, "name", "", "Update name")
	medicineEditCmd.Flags().StringVarP(&medicineEditFlagDosage, "dosage", "d", "", "Update dosage")
	medicineEditCmd.Flags().StringVar(&medicineEditFlagFreq, "freq", "", "Update frequency")
	medicineEditCmd.Flags().StringSliceVarP(&medicineEditFlagTimes, "times", "t", nil, "Replace dose times")
	medicineEditCmd.Flags().StringVar(&medicineEditFlagStart, "start", "", "Update start date")
	medicineEditCmd.Flags().StringVar(&medicineEditFlagEnd, "end", "", "Update end date")
	medicineEditCmd.Flags().StringVar(&medicineEditFlagInstructions, "instructions", "", "Update instructions")
	medicineEditCmd.Flags().StringVar(&medicineEditFlagColor, "color", "", "Update color")

	medicineDeleteCmd.Flags().BoolVar(&medicineDeleteFlagForce, "force", false, "Skip confirmation")

	medicineCmd.AddCommand(medicineAddCmd)
	medicineCmd.AddCommand(medicineListCmd)
	medicineCmd.AddCommand(medicineShowCmd)
	medicineCmd.AddCommand(medicineEditCmd)
	medicineCmd.AddCommand(medicineDeleteCmd)
	rootCmd.AddCommand(medicineCmd)
}

func runMedicineAdd(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	name := args[0]
	if err := validate.MedicineName(name); err != nil {
		return err
	}
	if err := validate.Dosage(medicineAddFlagDosage); err != nil {
		return err
	}
	if err := validate.Frequency(medicineAddFlagFreq); err != nil {
		return err
	}
	if err := validate.Instructions(medicineAddFlagInstructions); err != nil {
		return err
	}
	if medicineAddFlagColor != "" {
		if err := validate.HexColor(medicineAddFlagColor); err != nil {
			return err
		}
	}

	times, err := normalizeTimes(medicineAddFlagTimes)
	if err != nil {
		return err
	}

	now := time.Now()
	start, err := parseOptionalDate(medicineAddFlagStart, now)
	if err != nil {
		return err
	}
	end, err := parseOptionalDate(medicineAddFlagEnd, now)
	if err != nil {
		return err
	}

	medicine := model.NewMedicine(name, medicineAddFlagDosage, model.Frequency(medicineAddFlagFreq), times)
	medicine.StartDate = start
	medicine.EndDate = end
	medicine.Instructions = medicineAddFlagInstructions
	if medicineAddFlagColor != "" {
		medicine.Color = medicineAddFlagColor
	}

	if err := ctx.MedicineRepo.Create(medicine); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMedicineOutput(medicine))
	}

	cli := ctx.CLIFormatter()
	cli.Success("Added " + medicine.Name + " [" + medicine.ShortID() + "]")
	cli.PrintMedicine(medicine)
	return nil
}

func runMedicineList(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	medicines, err := ctx.MedicineRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMedicinesResponse(medicines))
	}

	ctx.CLIFormatter().PrintMedicineList(medicines)
	return nil
}

func runMedicineShow(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	medicine, err := ctx.MedicineRepo.Resolve(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMedicineOutput(medicine))
	}

	ctx.CLIFormatter().PrintMedicine(medicine)
	return nil
}

func runMedicineEdit(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	medicine, err := ctx.MedicineRepo.Resolve(args[0])
	if err != nil {
		return err
	}

	now := time.Now()

	if cmd.Flags().Changed("name") {
		if err := validate.MedicineName(medicineEditFlagName); err != nil {
			return err
		}
		medicine.Name = medicineEditFlagName
	}
	if cmd.Flags().Changed("dosage") {
		if err := validate.Dosage(medicineEditFlagDosage); err != nil {
			return err
		}
		medicine.Dosage = medicineEditFlagDosage
	}
	if cmd.Flags().Changed("freq") {
		if err := validate.Frequency(medicineEditFlagFreq); err != nil {
			return err
		}
		medicine.Frequency = model.Frequency(medicineEditFlagFreq)
	}
	if cmd.Flags().Changed("times") {
		times, err := normalizeTimes(medicineEditFlagTimes)
		if err != nil {
			return err
		}
		if len(times) == 0 {
			times = model.DefaultTimes(medicine.Frequency)
		}
		medicine.Times = times
	}
	if cmd.Flags().Changed("start") {
		start, err := parseOptionalDate(medicineEditFlagStart, now)
		if err != nil {
			return err
		}
		medicine.StartDate = start
	}
	if cmd.Flags().Changed("end") {
		end, err := parseOptionalDate(medicineEditFlagEnd, now)
		if err != nil {
			return err
		}
		medicine.EndDate = end
	}
	if cmd.Flags().Changed("instructions") {
		if err := validate.Instructions(medicineEditFlagInstructions); err != nil {
			return err
		}
		medicine.Instructions = medicineEditFlagInstructions
	}
	if cmd.Flags().Changed("color") {
		if err := validate.HexColor(medicineEditFlagColor); err != nil {
			return err
		}
		medicine.Color = medicineEditFlagColor
	}

	if err := ctx.MedicineRepo.Update(medicine); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMedicineOutput(medicine))
	}

	cli := ctx.CLIFormatter()
	cli.Success("Updated " + medicine.Name)
	cli.PrintMedicine(medicine)
	return nil
}

func runMedicineDelete(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequirePatient(); err != nil {
		return err
	}

	medicine, err := ctx.MedicineRepo.Resolve(args[0])
	if err != nil {
		return err
	}

	if !medicineDeleteFlagForce {
		return apperrors.NewUserError(
			"deleting "+medicine.Name+" also removes all of its dose logs",
			"Re-run with --force to confirm.",
		)
	}

	if err := ctx.MedicineRepo.DeleteCascade(medicine.Key, ctx.DoseLogRepo); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status": "deleted",
			"key":    medicine.Key,
		})
	}

	ctx.CLIFormatter().Success("Deleted " + medicine.Name + " and its dose logs")
	return nil
}

// normalizeTimes validates and canonicalizes a list of HH:MM times.
func normalizeTimes(times []string) ([]string, error) {
	if len(times) == 0 {
		return nil, nil
	}
	if err := validate.ClockTimes(times); err != nil {
		return nil, err
	}
	normalized := make([]string, len(times))
	for i, t := range times {
		clock, err := parser.NormalizeClock(t)
		if err != nil {
			return nil, err
		}
		normalized[i] = clock
	}
	return normalized, nil
}

// parseOptionalDate parses a date flag, returning "" when unset.
func parseOptionalDate(input string, now time.Time) (string, error) {
	if input == "" {
		return "", nil
	}
	return parser.ParseDate(input, now)
}
