package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/muesli/termenv"

	"github.com/leonardotrapani/hyprcolor/internal/color"
	"github.com/leonardotrapani/hyprcolor/internal/config"
	"github.com/leonardotrapani/hyprcolor/internal/provider"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

type section string

const (
	sectionProviders     section = "providers"
	sectionTranscription section = "transcription"
	sectionColors        section = "colors"
	sectionClipboard     section = "clipboard"
	sectionNotifications section = "notifications"
	sectionSaveExit      section = "save_exit"
	sectionDiscardExit   section = "discard_exit"
)

// Run shows the configuration menu until the user saves or discards. existing
// is never modified; the edited copy is returned.
func Run(existing *config.Config) (*ConfigureResult, error) {
	cfg := config.DefaultConfig()
	if existing != nil {
		copied := *existing
		copied.Providers = make(map[string]config.ProviderConfig, len(existing.Providers))
		for k, v := range existing.Providers {
			copied.Providers[k] = v
		}
		copied.Clipboard.Backends = append([]string(nil), existing.Clipboard.Backends...)
		cfg = &copied
	}

	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		selected, err := selectSection()
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch selected {
		case sectionSaveExit:
			confirmed, err := confirmSave(cfg)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: cfg}, nil
			}

		case sectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case sectionProviders:
			_ = editProviders(cfg)
		case sectionTranscription:
			_ = editTranscription(cfg)
		case sectionColors:
			_ = editColors(cfg)
		case sectionClipboard:
			_ = editClipboard(cfg)
		case sectionNotifications:
			_ = editNotifications(cfg)
		}
	}
}

func selectSection() (section, error) {
	var selected section
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[section]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(
					huh.NewOption("Providers", sectionProviders),
					huh.NewOption("Transcription", sectionTranscription),
					huh.NewOption("Colour table", sectionColors),
					huh.NewOption("Clipboard", sectionClipboard),
					huh.NewOption("Notifications", sectionNotifications),
					huh.NewOption("Save & Exit", sectionSaveExit),
					huh.NewOption("Discard & Exit", sectionDiscardExit),
				).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func editProviders(cfg *config.Config) error {
	var options []huh.Option[string]
	for _, name := range provider.ListProviders() {
		p := provider.GetProvider(name)
		status := "(not configured)"
		if pc, ok := cfg.Providers[name]; ok && pc.APIKey != "" {
			status = "(configured)"
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", p.DisplayName(), status), name))
	}

	var name string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Provider Settings").
			Description("Select a provider to configure its API key").
			Options(options...).
			Value(&name),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	p := provider.GetProvider(name)
	var key string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(p.DisplayName()+" API key").
			Description(fmt.Sprintf("Get one at %s (or set %s)", p.APIKeyURL(), p.EnvVar())).
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s != "" && !p.ValidateAPIKey(strings.TrimSpace(s)) {
					return fmt.Errorf("that does not look like a %s key", p.DisplayName())
				}
				return nil
			}).
			Value(&key),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	if key = strings.TrimSpace(key); key != "" {
		cfg.Providers[name] = config.ProviderConfig{APIKey: key}
	}
	return nil
}

func editTranscription(cfg *config.Config) error {
	providerName := cfg.Transcription.Provider
	var providerOpts []huh.Option[string]
	for _, name := range provider.ListProviders() {
		providerOpts = append(providerOpts, huh.NewOption(provider.GetProvider(name).DisplayName(), name))
	}

	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Transcription provider").
			Options(providerOpts...).
			Value(&providerName),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	p := provider.GetProvider(providerName)
	model := cfg.Transcription.Model
	if !provider.HasModel(p, model) {
		model = p.DefaultModel()
	}
	var modelOpts []huh.Option[string]
	for _, m := range p.Models() {
		modelOpts = append(modelOpts, huh.NewOption(fmt.Sprintf("%s - %s", m.Name, m.Description), m.ID))
	}
	language := cfg.Transcription.Language

	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Model").
			Options(modelOpts...).
			Value(&model),
		huh.NewInput().
			Title("Language").
			Description("ISO-639-1 code; colour names are matched in Spanish (es)").
			Value(&language),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	cfg.Transcription.Provider = providerName
	cfg.Transcription.Model = model
	cfg.Transcription.Language = strings.TrimSpace(language)
	return nil
}

func editColors(cfg *config.Config) error {
	path := cfg.Colors.TableFile
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Colour table CSV").
			Description(`Columns "name,hex"; leave empty for the built-in table`).
			Validate(validateTableFile).
			Value(&path),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}
	cfg.Colors.TableFile = strings.TrimSpace(path)
	return nil
}

func validateTableFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	_, err := color.LoadCSV(path)
	return err
}

func editClipboard(cfg *config.Config) error {
	enabled := cfg.Clipboard.Enabled
	backends := cfg.Clipboard.Backends

	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Copy detected colours to the clipboard?").
			Value(&enabled),
		huh.NewMultiSelect[string]().
			Title("Clipboard backends").
			Description("Tried in the listed order").
			Options(
				huh.NewOption("wl-copy (wl-clipboard)", "wl-copy"),
				huh.NewOption("system (xclip, xsel, wl-clipboard)", "system"),
			).
			Value(&backends),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	cfg.Clipboard.Enabled = enabled
	cfg.Clipboard.Backends = backends
	return nil
}

func editNotifications(cfg *config.Config) error {
	enabled := cfg.Notifications.Enabled
	kind := cfg.Notifications.Type

	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Show notifications?").
			Value(&enabled),
		huh.NewSelect[string]().
			Title("Notification type").
			Options(
				huh.NewOption("Desktop (notify-send)", "desktop"),
				huh.NewOption("Log only", "log"),
				huh.NewOption("None", "none"),
			).
			Value(&kind),
	)).WithTheme(getTheme()).Run(); err != nil {
		return err
	}

	cfg.Notifications.Enabled = enabled
	cfg.Notifications.Type = kind
	return nil
}

func confirmSave(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Print(Summary(cfg))
	if err := cfg.Validate(); err != nil {
		fmt.Println(StyleWarning.Render("  Warning: " + err.Error()))
	}
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}
