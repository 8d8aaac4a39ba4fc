package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// BRANCHBOARD_THEME_DIR lists extra theme directories, separated by the
// platform path-list separator.
const themeDirEnvVar = "BRANCHBOARD_THEME_DIR"

const defaultThemeName = "Catppuccin Mocha"

// Theme is the colour token set used by the dashboard. External themes are
// JSON files with the same snake_case keys, e.g. {"name":"Mine","base":"#111111",...}.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base     lipgloss.Color `json:"base"`
	Surface0 lipgloss.Color `json:"surface0"`
	Surface1 lipgloss.Color `json:"surface1"`
	Text     lipgloss.Color `json:"text"`
	Subtext  lipgloss.Color `json:"subtext"`
	Dim      lipgloss.Color `json:"dim"`

	Accent   lipgloss.Color `json:"accent"`
	Blue     lipgloss.Color `json:"blue"`
	Sapphire lipgloss.Color `json:"sapphire"`
	Green    lipgloss.Color `json:"green"`
	Yellow   lipgloss.Color `json:"yellow"`
	Red      lipgloss.Color `json:"red"`
	Peach    lipgloss.Color `json:"peach"`
	Teal     lipgloss.Color `json:"teal"`
	Lavender lipgloss.Color `json:"lavender"`
	Sky      lipgloss.Color `json:"sky"`
	Flamingo lipgloss.Color `json:"flamingo"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	applyTheme(themes[activeThemeIdx])
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Surface0: "#313244", Surface1: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Blue: "#89B4FA", Sapphire: "#74C7EC",
			Green: "#A6E3A1", Yellow: "#F9E2AF", Red: "#F38BA8",
			Peach: "#FAB387", Teal: "#94E2D5", Lavender: "#B4BEFE", Sky: "#89DCEB", Flamingo: "#F2CDCD",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Surface0: "#3C3836", Surface1: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Blue: "#83A598", Sapphire: "#83A598",
			Green: "#B8BB26", Yellow: "#FABD2F", Red: "#FB4934",
			Peach: "#FE8019", Teal: "#8EC07C", Lavender: "#D3869B", Sky: "#83A598", Flamingo: "#D3869B",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Surface0: "#44475A", Surface1: "#6272A4",
			Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4",
			Accent: "#BD93F9", Blue: "#8BE9FD", Sapphire: "#8BE9FD",
			Green: "#50FA7B", Yellow: "#F1FA8C", Red: "#FF5555",
			Peach: "#FFB86C", Teal: "#8BE9FD", Lavender: "#BD93F9", Sky: "#8BE9FD", Flamingo: "#FF79C6",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Surface0: "#3B4252", Surface1: "#434C5E",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Blue: "#81A1C1", Sapphire: "#88C0D0",
			Green: "#A3BE8C", Yellow: "#EBCB8B", Red: "#BF616A",
			Peach: "#D08770", Teal: "#8FBCBB", Lavender: "#B48EAD", Sky: "#88C0D0", Flamingo: "#B48EAD",
		},
		{
			Name: "Solarized Light", Icon: "☀",
			Base: "#FDF6E3", Surface0: "#EEE8D5", Surface1: "#DDD6C1",
			Text: "#586E75", Subtext: "#657B83", Dim: "#93A1A1",
			Accent: "#D33682", Blue: "#268BD2", Sapphire: "#2AA198",
			Green: "#859900", Yellow: "#B58900", Red: "#DC322F",
			Peach: "#CB4B16", Teal: "#2AA198", Lavender: "#6C71C4", Sky: "#268BD2", Flamingo: "#D33682",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	_, idx, ok := lo.FindIndexOf(all, func(t Theme) bool {
		return strings.EqualFold(t.Name, defaultThemeName)
	})
	if !ok {
		return 0
	}
	return idx
}

// colorFields pairs each JSON key with its token so themes can be trimmed and
// validated in one pass.
func (t *Theme) colorFields() []struct {
	key string
	c   *lipgloss.Color
} {
	return []struct {
		key string
		c   *lipgloss.Color
	}{
		{"base", &t.Base}, {"surface0", &t.Surface0}, {"surface1", &t.Surface1},
		{"text", &t.Text}, {"subtext", &t.Subtext}, {"dim", &t.Dim},
		{"accent", &t.Accent}, {"blue", &t.Blue}, {"sapphire", &t.Sapphire},
		{"green", &t.Green}, {"yellow", &t.Yellow}, {"red", &t.Red},
		{"peach", &t.Peach}, {"teal", &t.Teal}, {"lavender", &t.Lavender},
		{"sky", &t.Sky}, {"flamingo", &t.Flamingo},
	}
}

func parseTheme(data []byte) (Theme, error) {
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, err
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return Theme{}, fmt.Errorf("missing required field: name")
	}
	if t.Icon = strings.TrimSpace(t.Icon); t.Icon == "" {
		t.Icon = "🎨"
	}

	var missing []string
	for _, f := range t.colorFields() {
		*f.c = lipgloss.Color(strings.TrimSpace(string(*f.c)))
		if *f.c == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return Theme{}, fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return t, nil
}

func themeSearchDirs(configDir string) []string {
	var dirs []string
	if strings.TrimSpace(configDir) != "" {
		dirs = append(dirs, filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	dirs = lo.FilterMap(dirs, func(d string, _ int) (string, bool) {
		d = strings.TrimSpace(d)
		return filepath.Clean(d), d != ""
	})
	return lo.Uniq(dirs)
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var (
		loaded []Theme
		errs   []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		t, err := parseTheme(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme %s: %w", path, err))
			continue
		}
		loaded = append(loaded, t)
	}
	return loaded, errors.Join(errs...)
}

// mergeThemes appends extra to base; a theme whose name matches an existing
// one (case-insensitively) replaces it in place.
func mergeThemes(base, extra []Theme) []Theme {
	merged := append([]Theme(nil), base...)
	for _, t := range extra {
		_, i, ok := lo.FindIndexOf(merged, func(m Theme) bool { return strings.EqualFold(m.Name, t.Name) })
		if ok {
			merged[i] = t
			continue
		}
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, i, ok := lo.FindIndexOf(themes, func(t Theme) bool { return strings.EqualFold(t.Name, name) })
	if !ok {
		return false
	}
	activeThemeIdx = i
	applyTheme(themes[i])
	return true
}

// LoadThemes rebuilds the catalog from the built-ins plus JSON theme files in
// <configDir>/themes and BRANCHBOARD_THEME_DIR. Invalid files are skipped and
// reported in the joined error; valid ones stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	current := themes[activeThemeIdx].Name
	next := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		next = mergeThemes(next, loaded)
	}

	themes = next
	if !setActiveThemeByNameLocked(current) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...)
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return themes[activeThemeIdx]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()
	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
