package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"quality-analyzer/src/config"
	"quality-analyzer/src/util"
)

// Exit codes
const (
	ExitOK        = 0
	ExitFatal     = 1
	ExitThreshold = 2
)

// envPrefix prefixes environment overrides, e.g. QUALITY_CONCURRENCY
const envPrefix = "QUALITY"

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Handler handles CLI commands
type Handler struct {
	cfg     *config.Config
	v       *viper.Viper
	rootCmd *cobra.Command
}

// New creates a new CLI handler
func New() *Handler {
	h := &Handler{v: viper.New()}
	h.v.SetEnvPrefix(envPrefix)
	h.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	h.v.AutomaticEnv()
	h.setupCommands()
	return h
}

func (h *Handler) setupCommands() {
	h.rootCmd = &cobra.Command{
		Use:           "quality-analyzer",
		Short:         "JavaScript and TypeScript code quality analyzer",
		Long:          "Analyzes ESTree syntax trees for complexity, naming, size and duplication issues and scores every file",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return h.loadConfig()
		},
	}

	// Global flags
	h.rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (yaml or toml)")
	bindFlags(h.v, h.rootCmd.PersistentFlags(), "config")

	// Add subcommands
	h.rootCmd.AddCommand(h.analyzeCmd())
	h.rootCmd.AddCommand(h.versionCmd())
	h.rootCmd.AddCommand(h.detectorsCmd())
}

// bindFlags lets viper resolve each flag from the command line or from
// QUALITY_<NAME> in the environment
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(name, f)
		}
	}
}

func (h *Handler) loadConfig() error {
	loader := config.NewLoader()
	cfg, err := loader.Load(h.v.GetString("config"))
	if err != nil {
		return &ExitError{Code: ExitFatal, Err: fmt.Errorf("loading configuration: %w", err)}
	}
	h.cfg = cfg

	// Initialize logger from config
	util.SetDefaultLogger(cfg.Logging)
	util.Debug("Configuration loaded successfully")
	util.Debug("Log level set to: %s", cfg.Logging.Level)

	return nil
}

// SetArgs overrides the command line arguments
func (h *Handler) SetArgs(args []string) {
	h.rootCmd.SetArgs(args)
}

// SetOutput redirects command output
func (h *Handler) SetOutput(stdout, stderr io.Writer) {
	h.rootCmd.SetOut(stdout)
	h.rootCmd.SetErr(stderr)
}

// Execute runs the CLI
func (h *Handler) Execute() error {
	return h.rootCmd.Execute()
}

// ExitCode maps a command error onto a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFatal
}

// Run is the main entry point
func Run() {
	handler := New()
	if err := handler.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}
