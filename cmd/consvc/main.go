package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/consvc"
	"github.com/bft-labs/consvc/internal/cliconfig"
	"github.com/bft-labs/consvc/pkg/service"
)

const helpDescription = `
Run a worker as a Windows service, or in the foreground for debugging.

Without arguments consvc registers with the service control manager and logs
to <temp>/<name>.log. Pass /debug (or -debug) to run it as a console program;
Ctrl+C or Ctrl+Break stops it.

Configuration is read from $HOME/.consvc/config.toml, CONSVC_* environment
variables and flags, in increasing order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  consvc /debug --log-level debug
  consvc status --name heartbeat
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	code := service.ExitOK

	root := &cobra.Command{
		Use:           "consvc",
		Short:         "Run a worker as a Windows service or a console program",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, err := loadConfig(cmd, cfgPath, &cfg)
			if err != nil {
				code = service.ExitCodeOf(err)
				return err
			}

			w := newHeartbeat(cfg.Heartbeat)
			code, err = consvc.Run(cfg, cfgFile, w, args)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.consvc/config.toml)")
	flags.StringVar(&cfg.Name, "name", cfg.Name, "service name")
	flags.StringVar(&cfg.StatusDir, "status-dir", cfg.StatusDir, "directory of the status snapshot file")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: error, warning, info, debug, verbose or a number")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file in service mode (default: <temp>/<name>.log)")
	root.Flags().DurationVar(&cfg.WaitHint, "wait-hint", cfg.WaitHint, "wait hint reported while start or stop is pending")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time plugins get to shut down")
	root.Flags().DurationVar(&cfg.Heartbeat, "heartbeat", cfg.Heartbeat, "heartbeat interval of the sample worker")
	root.Flags().IntVar(&cfg.UnhandledResult, "unhandled-result", cfg.UnhandledResult, "result returned for optional controls without a handler")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload the log level when the config file changes")

	root.AddCommand(newStatusCommand(&cfg, &cfgPath))

	// The interactive-mode flag is not a cobra flag.
	root.SetArgs(service.StripModeFlags(args))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "consvc: %v\n", err)
		if code == service.ExitOK {
			code = service.ExitFailure
		}
	}
	return int(code)
}

// loadConfig layers the config file, environment and flags into cfg and
// validates it. It returns the config file path in effect.
func loadConfig(cmd *cobra.Command, cfgPath string, cfg *cliconfig.Config) (string, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return "", err
		}
	}

	// Environment overrides the file, flags override both.
	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return "", err
	}

	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return cfgFile, nil
}

func newStatusCommand(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the last reported status of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd, *cfgPath, cfg); err != nil {
				return err
			}
			snap, err := consvc.ReadStatus(cmd.Context(), *cfg)
			if err != nil {
				return fmt.Errorf("read status: %w", err)
			}
			if snap.IsEmpty() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no status recorded in %s\n", cfg.Name, cfg.StatusDir)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
}
