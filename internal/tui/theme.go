package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary string `yaml:"primary"`
	Accent  string `yaml:"accent"`
	Text    string `yaml:"text"`
	Muted   string `yaml:"muted"`
	Error   string `yaml:"error"`
	Border  string `yaml:"border"`
	BarBg   string `yaml:"bar-bg"`
	BarFg   string `yaml:"bar-fg"`
}

var (
	lightPalette = Palette{
		Primary: "#3f51b5",
		Accent:  "#f50057",
		Text:    "#212121",
		Muted:   "#757575",
		Error:   "#f44336",
		Border:  "#bdbdbd",
		BarBg:   "#3f51b5",
		BarFg:   "#ffffff",
	}
	darkPalette = Palette{
		Primary: "#90caf9",
		Accent:  "#f48fb1",
		Text:    "#ffffff",
		Muted:   "#9e9e9e",
		Error:   "#f44336",
		Border:  "#616161",
		BarBg:   "#272727",
		BarFg:   "#ffffff",
	}
)

// merge returns p with every non-empty field of o applied on top.
func (p Palette) merge(o Palette) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Primary, o.Primary)
	set(&p.Accent, o.Accent)
	set(&p.Text, o.Text)
	set(&p.Muted, o.Muted)
	set(&p.Error, o.Error)
	set(&p.Border, o.Border)
	set(&p.BarBg, o.BarBg)
	set(&p.BarFg, o.BarFg)
	return p
}

// Skin overrides the built-in light and dark palettes.
type Skin struct {
	Light Palette `yaml:"light"`
	Dark  Palette `yaml:"dark"`
}

// LoadSkin reads a skin file. A bare name is looked up as
// <configDir>/skins/<name>.yml.
func LoadSkin(name, configDir string) (Skin, error) {
	var skin Skin
	if name == "" || name == "default" {
		return skin, nil
	}

	path := name
	if !strings.ContainsRune(name, os.PathSeparator) && filepath.Ext(name) == "" {
		path = filepath.Join(configDir, "skins", name+".yml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return skin, fmt.Errorf("reading skin %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return skin, fmt.Errorf("parsing skin %s: %w", path, err)
	}
	return skin, nil
}

// Theme holds the rendered styles for one palette.
type Theme struct {
	Dark    bool
	Palette Palette

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color

	Section       lipgloss.Style
	ActiveSection lipgloss.Style
	DeckTitle     lipgloss.Style
	Help          lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Delta         lipgloss.Style
	ErrorText     lipgloss.Style
	Bar           lipgloss.Style
	BarTitle      lipgloss.Style
}

// NewTheme builds the light or dark theme, with skin overrides applied.
func NewTheme(dark bool, skin Skin) Theme {
	p := lightPalette.merge(skin.Light)
	if dark {
		p = darkPalette.merge(skin.Dark)
	}

	t := Theme{
		Dark:    dark,
		Palette: p,
		Primary: lipgloss.Color(p.Primary),
		Accent:  lipgloss.Color(p.Accent),
		Text:    lipgloss.Color(p.Text),
		Muted:   lipgloss.Color(p.Muted),
		Error:   lipgloss.Color(p.Error),
		Border:  lipgloss.Color(p.Border),
	}

	t.Section = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.ActiveSection = t.Section.BorderForeground(t.Primary)
	t.DeckTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.Help = lipgloss.NewStyle().Foreground(t.Muted)
	t.Label = lipgloss.NewStyle().Foreground(t.Muted)
	t.Value = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.Delta = lipgloss.NewStyle().Foreground(t.Accent)
	t.ErrorText = lipgloss.NewStyle().Foreground(t.Error)
	t.Bar = lipgloss.NewStyle().
		Background(lipgloss.Color(p.BarBg)).
		Foreground(lipgloss.Color(p.BarFg))
	t.BarTitle = t.Bar.Bold(true)
	return t
}

// Name is the label shown on the theme switch.
func (t Theme) Name() string {
	if t.Dark {
		return "Dark"
	}
	return "Light"
}

// resolveDark maps the configured theme to a dark flag. "auto" follows the
// terminal background.
func resolveDark(theme string) bool {
	switch strings.ToLower(theme) {
	case "dark":
		return true
	case "light":
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}
