package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// WizardConfig holds the answers collected by the export wizard.
type WizardConfig struct {
	Title          string
	Formats        []Format
	Dir            string
	ContainerWidth int
}

// Wizard asks interactively how to export the current tree.
type Wizard struct {
	config WizardConfig
}

// NewWizard creates a wizard prefilled with defaults.
func NewWizard(defaults WizardConfig) *Wizard {
	return &Wizard{config: defaults}
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run executes the wizard and returns the collected configuration.
func (w *Wizard) Run() (WizardConfig, error) {
	w.printBanner()

	options := make([]huh.Option[string], 0, len(Formats()))
	for _, f := range Formats() {
		options = append(options, huh.NewOption(formatLabel(f), string(f)))
	}
	selected := make([]string, 0, len(w.config.Formats))
	for _, f := range w.config.Formats {
		selected = append(selected, string(f))
	}
	title := w.config.Title
	dir := w.config.Dir
	width := strconv.Itoa(w.config.ContainerWidth)

	form := newForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Formats").
				Description("Space to toggle, enter to confirm").
				Options(options...).
				Value(&selected).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("pick at least one format")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output directory").
				Value(&dir).
				Placeholder("."),
			huh.NewInput().
				Title("Container width (px)").
				Description("Images are centered in this width; 0 fits the tree").
				Value(&width).
				Validate(validateWidth),
			huh.NewInput().
				Title("Title").
				Value(&title).
				Placeholder("Binary Tree"),
		),
	)
	if err := form.Run(); err != nil {
		return WizardConfig{}, err
	}

	cfg := WizardConfig{Title: strings.TrimSpace(title), Dir: strings.TrimSpace(dir)}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	cfg.ContainerWidth, _ = strconv.Atoi(strings.TrimSpace(width))
	for _, s := range selected {
		cfg.Formats = append(cfg.Formats, Format(s))
	}
	w.config = cfg
	fmt.Println("")
	return cfg, nil
}

// GetConfig returns the collected wizard configuration.
func (w *Wizard) GetConfig() WizardConfig {
	return w.config
}

func (w *Wizard) printBanner() {
	fmt.Println("")
	fmt.Println("╔════════════════════════════════════════════╗")
	fmt.Println("║           dsv → Tree Export Wizard         ║")
	fmt.Println("╠════════════════════════════════════════════╣")
	fmt.Println("║  Pick formats, a directory and a width.    ║")
	fmt.Println("║  Press Ctrl+C anytime to cancel            ║")
	fmt.Println("╚════════════════════════════════════════════╝")
	fmt.Println("")
}

func validateWidth(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("width must be a whole number")
	}
	if n < 0 || n > 20000 {
		return fmt.Errorf("width must be between 0 and 20000")
	}
	return nil
}

func formatLabel(f Format) string {
	switch f {
	case FormatSVG:
		return "SVG image"
	case FormatPNG:
		return "PNG image"
	case FormatJSON:
		return "JSON document"
	case FormatMarkdown:
		return "Markdown report"
	case FormatSQLite:
		return "SQLite database"
	}
	return string(f)
}
