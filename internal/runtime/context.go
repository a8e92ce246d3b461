// Package runtime provides application runtime context for Dosewatch.
package runtime

import (
	"os"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	MedicineRepo     *storage.MedicineRepo
	DoseLogRepo      *storage.DoseLogRepo
	PatientRepo      *storage.PatientRepo
	WebhookRepo      *storage.WebhookRepo
	NotifyConfigRepo *storage.NotifyConfigRepo

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("DOSEWATCH_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	// Open database
	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	// Create formatter
	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:               db,
		Formatter:        formatter,
		MedicineRepo:     storage.NewMedicineRepo(db),
		DoseLogRepo:      storage.NewDoseLogRepo(db),
		PatientRepo:      storage.NewPatientRepo(db),
		WebhookRepo:      storage.NewWebhookRepo(db),
		NotifyConfigRepo: storage.NewNotifyConfigRepo(db),
		Debug:            opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// RequirePatient returns the registered patient, or a user error telling
// them to register first. Commands that operate on medicines or doses
// call this as their gate.
func (c *Context) RequirePatient() (*model.Patient, error) {
	patient, err := c.PatientRepo.Get()
	if err != nil {
		return nil, err
	}
	if patient == nil {
		ue := apperrors.NewUserError(
			"no patient registered",
			"Use 'dosewatch patient register' to get started.",
		)
		ue.Err = apperrors.ErrNoPatient
		return nil, ue
	}
	return patient, nil
}
