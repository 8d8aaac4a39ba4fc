package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func snapshotThemeState() ([]Theme, int) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...), activeThemeIdx
}

func restoreThemeState(saved []Theme, savedIdx int) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themes = append([]Theme(nil), saved...)
	activeThemeIdx = savedIdx
	applyTheme(themes[activeThemeIdx])
}

func writeThemeFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write theme file: %v", err)
	}
}

func externalThemeJSON(name, accent string) string {
	return `{
  "name": "` + name + `",
  "base": "#111111", "surface0": "#232323", "surface1": "#303030",
  "text": "#E8E8E8", "subtext": "#BDBDBD", "dim": "#6A6A6A",
  "accent": "` + accent + `", "blue": "#4FA3FF", "sapphire": "#4FD1FF",
  "green": "#46C46A", "yellow": "#F2C94C", "red": "#FF5D5D",
  "peach": "#FF9F43", "teal": "#2CC7B0", "lavender": "#B7A6FF",
  "sky": "#7CD8FF", "flamingo": "#FF8FB1"
}`
}

func TestDefaultThemeIsActive(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	restoreThemeState(builtinThemes(), defaultThemeIndex(builtinThemes()))
	if got := ActiveTheme().Name; got != defaultThemeName {
		t.Fatalf("active theme = %q, want %q", got, defaultThemeName)
	}
	if colorAccent != ActiveTheme().Accent {
		t.Fatalf("colorAccent = %q, want %q", colorAccent, ActiveTheme().Accent)
	}
}

func TestCycleThemeWrapsAround(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	start := ActiveTheme().Name
	n := len(AvailableThemes())
	for i := 0; i < n; i++ {
		CycleTheme()
	}
	if got := ActiveTheme().Name; got != start {
		t.Fatalf("after %d cycles theme = %q, want %q", n, got, start)
	}
}

func TestSetThemeByNameCaseInsensitive(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	if !SetThemeByName("  nord ") {
		t.Fatal("SetThemeByName(nord) = false")
	}
	if got := ActiveTheme().Name; got != "Nord" {
		t.Fatalf("active = %q, want Nord", got)
	}
	if SetThemeByName("does-not-exist") {
		t.Fatal("unknown theme should not activate")
	}
	if !strings.HasSuffix(ThemeName(), "Nord") {
		t.Fatalf("ThemeName() = %q", ThemeName())
	}
}

func TestLoadThemesMergesExternal(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	configDir := t.TempDir()
	envDir := t.TempDir()
	writeThemeFile(t, filepath.Join(configDir, "themes"), "ocean.json", externalThemeJSON("Ocean", "#00AAFF"))
	writeThemeFile(t, envDir, "nord.json", externalThemeJSON("nord", "#123456"))
	writeThemeFile(t, envDir, "broken.json", `{"name": "Broken"}`)
	writeThemeFile(t, envDir, "notes.txt", "ignored")
	t.Setenv(themeDirEnvVar, envDir)

	err := LoadThemes(configDir)
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Fatalf("LoadThemes() error = %v, want broken.json reported", err)
	}

	all := AvailableThemes()
	if len(all) != len(builtinThemes())+1 {
		t.Fatalf("themes = %d, want builtins + Ocean", len(all))
	}
	if !SetThemeByName("Ocean") {
		t.Fatal("Ocean theme not loaded")
	}
	if !SetThemeByName("Nord") || ActiveTheme().Accent != "#123456" {
		t.Fatalf("Nord override not applied: %+v", ActiveTheme())
	}
	if ActiveTheme().Icon != "🎨" {
		t.Fatalf("default icon = %q", ActiveTheme().Icon)
	}
}

func TestParseThemeMissingColors(t *testing.T) {
	_, err := parseTheme([]byte(`{"name":"Half","base":"#000000"}`))
	if err == nil || !strings.Contains(err.Error(), "accent") {
		t.Fatalf("parseTheme() error = %v, want missing accent", err)
	}
	if _, err := parseTheme([]byte(`{"base":"#000000"}`)); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestBranchColorUsesPalette(t *testing.T) {
	if BranchColor(0) != colorBlue || BranchColor(8) != colorBlue {
		t.Fatalf("BranchColor(0/8) = %q/%q, want %q", BranchColor(0), BranchColor(8), colorBlue)
	}
	if BranchColor(1) == BranchColor(2) {
		t.Fatal("adjacent branch colours should differ")
	}
}

func TestSlotColorFollowsTheme(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	want := []lipgloss.Color{colorBlue, colorGreen, colorLavender, colorPeach, colorFlamingo, colorTeal}
	for i, c := range want {
		if got := SlotColor(i); got != c {
			t.Errorf("SlotColor(%d) = %q, want %q", i, got, c)
		}
	}
	if SlotColor(6) != colorAccent || SlotColor(-1) != colorAccent {
		t.Error("out-of-range slot should use the accent colour")
	}

	SetThemeByName("Nord")
	if got := SlotColor(0); got != ActiveTheme().Blue {
		t.Errorf("SlotColor(0) after theme switch = %q, want %q", got, ActiveTheme().Blue)
	}
}
