package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardotrapani/hyprcolor/internal/bus"
	"github.com/leonardotrapani/hyprcolor/internal/color"
	"github.com/leonardotrapani/hyprcolor/internal/config"
	"github.com/leonardotrapani/hyprcolor/internal/daemon"
	"github.com/leonardotrapani/hyprcolor/internal/deps"
	"github.com/leonardotrapani/hyprcolor/internal/swatch"
	"github.com/leonardotrapani/hyprcolor/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hyprcolor",
		Short:        "Speak a colour name in Spanish, get its hex code",
		SilenceUsage: true,
	}

	root.AddCommand(
		serveCmd(),
		busCmd("toggle", "Start recording, or finish it and resolve the colour", bus.CmdToggle),
		busCmd("cancel", "Cancel the current session", bus.CmdCancel),
		busCmd("status", "Get the current session status", bus.CmdStatus),
		versionCmd(),
		busCmd("stop", "Stop the daemon", bus.CmdQuit),
		lastCmd(),
		resolveCmd(),
		colorsCmd(),
		configureCmd(),
		doctorCmd(),
	)

	cc.Init(&cc.Config{
		RootCmd:       root,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})
	return root
}

func serveCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, level, err := newLogger(debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck
			restore := zap.ReplaceGlobals(logger)
			defer restore()

			mgr, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !debug {
				applyLogLevel(level, mgr.GetConfig().General.LogLevel)
			}

			return daemon.New(mgr).Run()
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level with the development encoder")
	return cmd
}

func busCmd(use, short string, command byte) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand(command)
			if err != nil {
				return fmt.Errorf("failed to %s: %w (is `hyprcolor serve` running?)", use, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version and check it against this client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bus.SendCommand(bus.CmdVersion)
			if err != nil {
				return fmt.Errorf("failed to get version: %w (is `hyprcolor serve` running?)", err)
			}
			resp, err := bus.ParseResponse(line)
			if err != nil {
				return err
			}
			proto := resp.Fields["proto"]
			fmt.Fprintf(cmd.OutOrStdout(), "client protocol %s, daemon protocol %s\n", bus.ProtoVer, proto)
			return checkProto(proto)
		},
	}
}

// checkProto fails when the daemon speaks another major protocol version.
func checkProto(daemonProto string) error {
	client, err := semver.NewVersion(bus.ProtoVer)
	if err != nil {
		return fmt.Errorf("invalid client protocol version %q: %w", bus.ProtoVer, err)
	}
	remote, err := semver.NewVersion(daemonProto)
	if err != nil {
		return fmt.Errorf("invalid daemon protocol version %q: %w", daemonProto, err)
	}
	if client.Major() != remote.Major() {
		return fmt.Errorf("protocol mismatch: client %s, daemon %s; restart the daemon", bus.ProtoVer, daemonProto)
	}
	return nil
}

func lastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the last resolved colour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bus.SendCommand(bus.CmdLast)
			if err != nil {
				return fmt.Errorf("failed to get last result: %w", err)
			}
			resp, err := bus.ParseResponse(line)
			if err != nil {
				return err
			}
			return printLast(cmd.OutOrStdout(), swatch.New(nil), resp)
		},
	}
}

func printLast(w io.Writer, r *swatch.Renderer, resp bus.Response) error {
	if resp.Kind != "LAST" {
		return errors.New(strings.TrimSpace(resp.Fields["msg"]))
	}
	fmt.Fprintf(w, "%q\n", resp.Fields["transcript"])
	return printColor(w, r, resp.Fields["hex"], resp.Fields["found"] == "true")
}

func printColor(w io.Writer, r *swatch.Renderer, hex string, found bool) error {
	if !found {
		fmt.Fprintln(w, r.RenderNone())
		return nil
	}
	out, err := r.Render(hex)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// loadTable returns the configured colour table, or the built-in one when no
// config file exists yet.
func loadTable() (*color.Table, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		return color.Default, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg.ColorTable()
}

func resolveCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "resolve <text...>",
		Short: "Resolve a colour from text without recording",
		Example: `  hyprcolor resolve "quiero el azul"
  hyprcolor resolve --plain pinta de color '#1a2b3c'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			hex, found := table.Resolve(text)
			if plain {
				if found {
					fmt.Fprintln(cmd.OutOrStdout(), hex)
					return nil
				}
				return errors.New(swatch.NoColorText)
			}
			if err := printColor(cmd.OutOrStdout(), swatch.New(nil), hex, found); err != nil {
				return err
			}
			printMatch(cmd.OutOrStdout(), table, text, found)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the hex code; fail when nothing matches")
	return cmd
}

// printMatch says which table entry, if any, decided the resolution.
func printMatch(w io.Writer, table *color.Table, text string, found bool) {
	if e, ok := table.Lookup(text); ok {
		fmt.Fprintf(w, "matched %q\n", e.Name)
	} else if found {
		fmt.Fprintln(w, "matched a literal hex code")
	}
}

func colorsCmd() *cobra.Command {
	var (
		asCSV  bool
		filter string
	)

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List the colour table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}
			if filter != "" {
				if table, err = filterTable(table, filter); err != nil {
					return err
				}
			}
			if asCSV {
				return table.WriteCSV(cmd.OutOrStdout())
			}
			return printTable(cmd.OutOrStdout(), swatch.New(nil), table)
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write the table as name,hex CSV")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only list names fuzzily matching this text (accents ignored)")
	return cmd
}

// filterTable keeps the entries whose name fuzzily contains filter, in table
// order.
func filterTable(table *color.Table, filter string) (*color.Table, error) {
	var kept []color.Entry
	for _, e := range table.Entries() {
		if fuzzy.MatchNormalizedFold(filter, e.Name) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no colour name matches %q", filter)
	}
	return color.NewTable(kept)
}

func printTable(w io.Writer, r *swatch.Renderer, table *color.Table) error {
	for _, e := range table.Entries() {
		chip, err := r.Chip(e.Name, e.Hex)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, chip)
	}
	return nil
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration for hyprcolor.
This will guide you through setting up:
- Provider API keys (OpenAI, Groq)
- Transcription model and language
- A custom colour table
- Clipboard and notification preferences`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Println(tui.StyleWarning.Render("Saved with a validation warning: " + err.Error()))
	}
	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.StyleSuccess.Render("Configuration saved successfully!"))
	fmt.Println()
	showNextSteps()
	return nil
}

func showNextSteps() {
	serviceRunning := exec.Command("systemctl", "--user", "is-active", "--quiet", "hyprcolor.service").Run() == nil

	fmt.Println("Next Steps:")
	if serviceRunning {
		fmt.Println("1. The running daemon reloads the config automatically")
	} else {
		fmt.Println("1. Start the daemon: hyprcolor serve (or systemctl --user start hyprcolor.service)")
	}
	fmt.Println("2. Bind `hyprcolor toggle` to a key and say a colour, e.g. \"azul marino\"")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), deps.CheckAll())
		},
	}
}

func printDaemonState(w io.Writer) {
	sock, err := bus.SockPath()
	if err != nil {
		fmt.Fprintln(w, tui.StyleError.Render("!! socket path: "+err.Error()))
		return
	}
	if _, err := bus.SendCommand(bus.CmdStatus); err != nil {
		fmt.Fprintln(w, tui.StyleWarning.Render("-- daemon not running ("+sock+")"))
		return
	}
	fmt.Fprintln(w, tui.StyleSuccess.Render("ok daemon listening on "+sock))
}

func runDoctor(w io.Writer, results []deps.Result) error {
	for _, r := range results {
		mark := tui.StyleSuccess.Render("ok")
		detail := r.Status.Path
		if r.Status.Version != "" {
			detail += " (" + r.Status.Version + ")"
		}
		if !r.Status.Installed {
			mark = tui.StyleWarning.Render("--")
			if r.Tool.Required {
				mark = tui.StyleError.Render("!!")
			}
			detail = "not found, install " + r.Tool.Package
		}
		fmt.Fprintf(w, "%s %-12s %-28s %s\n", mark, r.Tool.Name, r.Tool.Purpose, detail)
	}

	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		fmt.Fprintln(w, tui.StyleWarning.Render("-- config not found, run `hyprcolor configure`"))
	case err != nil:
		fmt.Fprintln(w, tui.StyleError.Render("!! config: "+err.Error()))
	default:
		if verr := cfg.Validate(); verr != nil {
			fmt.Fprintln(w, tui.StyleError.Render("!! config: "+verr.Error()))
		} else {
			fmt.Fprintln(w, tui.StyleSuccess.Render("ok config valid"))
		}
	}

	printDaemonState(w)

	if missing := deps.MissingRequired(results); len(missing) > 0 {
		return fmt.Errorf("%d required tool(s) missing", len(missing))
	}
	return nil
}
