package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/config"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/database"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/handlers"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/middleware"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/photos"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/report"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/services"
)

// App holds the long-lived components of one process.
type App struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB

	authService    *services.AuthService
	patientService *services.PatientService
	reportService  *services.ReportService
}

// NewApp opens the record store, creates the initial user when needed and
// wires the services.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.Open(cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	// --- Initialize Repositories ---
	patientRepo := repositories.NewGORMPatientRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, log)
	if err := authService.Bootstrap(cfg.AdminUsername, cfg.BootstrapPassword); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to create initial user (set CLINIC_BOOTSTRAP_PASSWORD on first run): %w", err)
	}

	store := photos.NewStore(cfg.AssetDir, cfg.ThumbnailSize)
	patientService := services.NewPatientService(patientRepo, store, log)

	renderer := report.NewRenderer(report.Options{
		RegularFont:   cfg.RegularFontPath(),
		BoldFont:      cfg.BoldFontPath(),
		SignatureFile: cfg.SignaturePath(),
		ClinicName:    cfg.ClinicName,
		PhotoPath:     store.Path,
	}, log)
	reportService := services.NewReportService(patientRepo, renderer, cfg.ReportDir, log)

	return &App{
		cfg:            cfg,
		log:            log,
		db:             db,
		authService:    authService,
		patientService: patientService,
		reportService:  reportService,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return database.Close(a.db)
}

// Command builds the clinic command tree. Credentials are read from v and,
// when missing, prompted for on in with prompts written to out.
func (a *App) Command(v *viper.Viper, in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "clinic",
		Short: "Psychiatric patient intake records",
		Long: `Record patient intake forms, edit them, and export PDF reports.

Configuration is read from clinic.yaml (or the file named by CLINIC_CONFIG)
and CLINIC_* environment variables. On first run CLINIC_BOOTSTRAP_PASSWORD
sets the password of the initial user.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("username", "", "Login name (default $CLINIC_USERNAME)")
	_ = v.BindPFlag("username", root.PersistentFlags().Lookup("username"))

	// Protected commands share one gate so a process logs in at most once.
	gate := middleware.AuthRequired(a.authService, v, in, out)

	handlers.NewAuthHandler().RegisterCommands(root).PersistentPreRunE = gate
	handlers.NewPatientHandler(a.patientService).RegisterCommands(root).PersistentPreRunE = gate
	handlers.NewReportHandler(a.reportService).RegisterCommands(root).PersistentPreRunE = gate
	handlers.NewConfigHandler(a.cfg).RegisterCommands(root)
	return root
}

// newLogger builds the process logger from the configuration.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(errOut, "Failed to load configuration: %v\n", err)
		return 1
	}
	log := newLogger(cfg, errOut)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}()

	root := app.Command(v, in, errOut)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
