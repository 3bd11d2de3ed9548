// Package cli provides the command-line interface of lpub.
package cli

import (
	"bytes"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lpubmeta/internal/config"
	"lpubmeta/internal/data/embedded"
	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/logger"
	"lpubmeta/internal/output"
)

// samplePrefix selects a bundled sample instead of a file, as in "sample:car".
const samplePrefix = "sample:"

// App represents the lpub CLI application.
type App struct {
	Config *config.Config

	v          *viper.Viper
	configFile string
	printer    *output.Printer
}

// NewApp creates a new lpub CLI application.
func NewApp() *App {
	return &App{
		v: config.New(),
	}
}

// CreateRootCommand creates and configures the root command.
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lpub",
		Short: "LPub meta-command interpreter and LDraw model tools",
		Long: `lpub interprets LPub meta-commands in LDraw documents, counts submodel
instances and steps, and keeps multi-part documents in a model registry.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.StringVar(&app.configFile, "config", "", "Config file (default: lpub.yaml in the working or user config directory)")
	flags.StringSlice("search-dir", nil, "Directories searched for referenced model files")
	flags.Bool("extended-search", false, "Also search parts, p and models below each search directory")
	flags.String("theme", "", "Output theme (auto|dark|light|default|plain)")

	app.addParseCommand(rootCmd)
	app.addCheckCommand(rootCmd)
	app.addCountCommand(rootCmd)
	app.addDocumentCommands(rootCmd)
	app.addDocCommand(rootCmd)
	app.addShellCommand(rootCmd)
	app.addServeCommand(rootCmd)
	app.addSnapshotCommand(rootCmd)
	app.addVersionCommand(rootCmd)

	return rootCmd
}

// initConfig resolves configuration, then sets up logging and the printer.
func (app *App) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(app.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(app.v, app.configFile)
	if err != nil {
		return err
	}
	app.Config = cfg

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return err
	}

	opts := []output.Option{output.WithWriter(cmd.OutOrStdout())}
	switch {
	case cfg.TestMode || !output.SupportsColor():
		opts = append(opts, output.PlainText())
	default:
		theme, err := output.LoadTheme(cfg.Theme)
		if err != nil {
			return err
		}
		opts = append(opts, output.WithStyles(theme), output.WithWidth(output.Width(100)))
	}
	app.printer = output.NewPrinter(opts...)
	return nil
}

// newRegistry returns an empty registry using the configured search path.
func (app *App) newRegistry() *ldraw.Registry {
	reg := ldraw.New()
	reg.SetSearchDirs(app.Config.SearchDirs, app.Config.ExtendedSearch)
	return reg
}

// loadDocument loads a file, or a bundled sample named with the sample: prefix.
func (app *App) loadDocument(path string) (*ldraw.Registry, error) {
	reg := app.newRegistry()
	if name, ok := strings.CutPrefix(path, samplePrefix); ok {
		samples := embedded.NewSampleLoader()
		data, err := samples.Load(name)
		if err != nil {
			return nil, err
		}
		if err := reg.Read(samples.Path(name), bytes.NewReader(data), time.Now()); err != nil {
			return nil, err
		}
		return reg, nil
	}
	if err := reg.Load(path); err != nil {
		return nil, err
	}
	return reg, nil
}

// modelNames returns the model names of a registry in load order, as written.
func modelNames(reg *ldraw.Registry) []string {
	var names []string
	for _, k := range reg.SubFileOrder() {
		if f, ok := reg.Get(k); ok {
			names = append(names, f.Name)
		}
	}
	return names
}
