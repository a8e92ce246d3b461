package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/validate"
)

// Patient command flags.
var (
	patientRegisterFlagFirst      string
	patientRegisterFlagLast       string
	patientRegisterFlagEmail      string
	patientRegisterFlagPhone      string
	patientRegisterFlagDOB        string
	patientRegisterFlagGender     string
	patientRegisterFlagConditions []string
	patientRegisterFlagAllergies  []string
	patientRegisterFlagECName     string
	patientRegisterFlagECPhone    string
	patientRegisterFlagECRelation string
	patientLogoutFlagForce        bool
)

// patientCmd represents the patient command.
var patientCmd = &cobra.Command{
	Use:   "patient [command]",
	Short: "Manage the patient profile",
	Long: `Dosewatch tracks a single patient at a time. Registering a new patient
replaces the stored profile; logging out removes the profile together
with every medicine and dose log.

Examples:
  dosewatch patient register --first Ada --last Lovelace --dob 1990-12-10
  dosewatch patient show
  dosewatch patient logout`,
	RunE: runPatientShow,
}

// patientRegisterCmd registers the patient profile.
var patientRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the patient profile",
	RunE:  runPatientRegister,
}

// patientShowCmd shows the patient profile.
var patientShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the patient profile",
	RunE:  runPatientShow,
}

// patientLogoutCmd clears the profile and all tracked data.
var patientLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the patient profile and all stored data",
	RunE:  runPatientLogout,
}

func init() {
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagFirst, "first", "", "First name (required)")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagLast, "last", "", "Last name (required)")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagEmail, "email", "", "Email address")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagPhone, "phone", "", "Phone number")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagDOB, "dob", "", "Date of birth (YYYY-MM-DD)")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagGender, "gender", "", "Gender: male, female, other")
	patientRegisterCmd.Flags().StringSliceVar(&patientRegisterFlagConditions, "condition", nil, "Medical condition (repeatable)")
	patientRegisterCmd.Flags().StringSliceVar(&patientRegisterFlagAllergies, "allergy", nil, "Allergy (repeatable)")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagECName, "emergency-name", "", "Emergency contact name")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagECPhone, "emergency-phone", "", "Emergency contact phone")
	patientRegisterCmd.Flags().StringVar(&patientRegisterFlagECRelation, "emergency-relationship", "", "Emergency contact relationship")
	_ = patientRegisterCmd.MarkFlagRequired("first")
	_ = patientRegisterCmd.MarkFlagRequired("last")

	patientLogoutCmd.Flags().BoolVar(&patientLogoutFlagForce, "force", false, "Skip confirmation")

	patientCmd.AddCommand(patientRegisterCmd)
	patientCmd.AddCommand(patientShowCmd)
	patientCmd.AddCommand(patientLogoutCmd)
	rootCmd.AddCommand(patientCmd)
}

func runPatientRegister(cmd *cobra.Command, args []string) error {
	if patientRegisterFlagDOB != "" {
		if err := validate.Date(patientRegisterFlagDOB); err != nil {
			return err
		}
	}
	if patientRegisterFlagGender != "" {
		if err := validate.Gender(patientRegisterFlagGender); err != nil {
			return err
		}
	}

	existing, err := ctx.PatientRepo.Get()
	if err != nil {
		return err
	}

	patient := &model.Patient{
		FirstName:   strings.TrimSpace(patientRegisterFlagFirst),
		LastName:    strings.TrimSpace(patientRegisterFlagLast),
		Email:       patientRegisterFlagEmail,
		Phone:       patientRegisterFlagPhone,
		DateOfBirth: patientRegisterFlagDOB,
		Gender:      model.Gender(patientRegisterFlagGender),
		EmergencyContact: model.EmergencyContact{
			Name:         strings.TrimSpace(patientRegisterFlagECName),
			Phone:        strings.TrimSpace(patientRegisterFlagECPhone),
			Relationship: strings.TrimSpace(patientRegisterFlagECRelation),
		},
		Conditions: patientRegisterFlagConditions,
		Allergies:  patientRegisterFlagAllergies,
	}

	if err := ctx.PatientRepo.Save(patient); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewPatientOutput(patient, time.Now()))
	}

	cli := ctx.CLIFormatter()
	if existing != nil {
		cli.Warning("Replaced previous patient profile for " + existing.FullName())
	}
	cli.Success("Registered patient " + patient.FullName())
	return nil
}

func runPatientShow(cmd *cobra.Command, args []string) error {
	patient, err := ctx.RequirePatient()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewPatientOutput(patient, time.Now()))
	}

	cli := ctx.CLIFormatter()
	cli.Title(patient.FullName())
	if patient.DateOfBirth != "" {
		cli.Printf("  Born: %s", patient.DateOfBirth)
		if age := patient.Age(time.Now()); age >= 0 {
			cli.Printf(" (%d years)", age)
		}
		cli.Println("")
	}
	if patient.Gender != "" {
		cli.Printf("  Gender: %s\n", patient.Gender)
	}
	if patient.Email != "" {
		cli.Printf("  Email: %s\n", patient.Email)
	}
	if patient.Phone != "" {
		cli.Printf("  Phone: %s\n", patient.Phone)
	}
	if len(patient.Conditions) > 0 {
		cli.Printf("  Conditions: %s\n", strings.Join(patient.Conditions, ", "))
	}
	if len(patient.Allergies) > 0 {
		cli.Printf("  Allergies: %s\n", strings.Join(patient.Allergies, ", "))
	}
	if ec := patient.EmergencyContact; ec.Name != "" || ec.Phone != "" {
		line := "  Emergency contact: " + ec.Name
		if ec.Relationship != "" {
			line += " (" + ec.Relationship + ")"
		}
		if ec.Phone != "" {
			line += ", " + ec.Phone
		}
		cli.Println(line)
	}
	return nil
}

func runPatientLogout(cmd *cobra.Command, args []string) error {
	patient, err := ctx.PatientRepo.Get()
	if err != nil {
		return err
	}
	if patient == nil {
		return apperrors.NewUserError("no patient registered", "")
	}

	if !patientLogoutFlagForce {
		return apperrors.NewUserError(
			"logout removes the patient profile, all medicines, and all dose logs",
			"Re-run with --force to confirm.",
		)
	}

	if err := ctx.PatientRepo.Logout(ctx.MedicineRepo, ctx.DoseLogRepo); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "logged_out"})
	}

	ctx.CLIFormatter().Success("Logged out " + patient.FullName() + " and cleared all data")
	return nil
}
