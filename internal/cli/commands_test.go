package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

const cardScene = `
name  = "card"
width = "exact:320"

[[boxes]]
id     = "icon"
width  = "48"
height = "48"
margin = { left = "8", top = "8" }

[[boxes]]
id      = "label"
anchor  = { left = "icon" }
margin  = { left = "12", top = "8" }
content = { width = 120, height = 20 }

[[boxes]]
id         = "badge"
visibility = "collapsed"
`

const cyclicScene = `
[[boxes]]
id     = "a"
anchor = { right = "b" }

[[boxes]]
id     = "b"
anchor = { left = "a" }
`

// workspace isolates the cache and returns a directory holding the scenes.
func workspace(t *testing.T, scenes map[string]string) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	for name, src := range scenes {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.Quiet = true
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readResult(t *testing.T, path string) layout.Result {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return res
}

func TestLayoutCommand(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})
	input := filepath.Join(dir, "card.toml")

	out, err := runCLI(t, "layout", input)
	if err != nil {
		t.Fatalf("layout error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Laid out") || !strings.Contains(out, "fresh") {
		t.Errorf("output = %q", out)
	}
	res := readResult(t, filepath.Join(dir, "card.layout.json"))
	if res.Width != 320 {
		t.Errorf("Width = %d, want 320", res.Width)
	}
	if pl, ok := res.Lookup("badge"); !ok || pl.Visible {
		t.Errorf("badge = %+v, want collapsed", pl)
	}

	out, err = runCLI(t, "layout", input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second run output = %q, want cached", out)
	}
}

func TestLayoutCommandMultiple(t *testing.T) {
	dir := workspace(t, map[string]string{
		"a.toml": cardScene,
		"b.json": `{"width": "exact:50", "boxes": [{"id": "x", "width": "match", "height": "10"}]}`,
	})

	out, err := runCLI(t, "layout", "-j", "2", filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.json"))
	if err != nil {
		t.Fatalf("layout error: %v\n%s", err, out)
	}
	if res := readResult(t, filepath.Join(dir, "b.layout.json")); res.Boxes[0].Rect.String() != "(0,0)-(50,10)" {
		t.Errorf("b.json rect = %s", res.Boxes[0].Rect)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.layout.json")); err != nil {
		t.Error(err)
	}

	if _, err := runCLI(t, "layout", "-o", "out.json", filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.json")); err == nil {
		t.Error("layout -o with two inputs should fail")
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})
	out, err := runCLI(t, "layout", "--no-cache", "-o", "-", filepath.Join(dir, "card.toml"))
	if err != nil {
		t.Fatal(err)
	}
	var res layout.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("stdout is not a result: %v\n%s", err, out)
	}
	if res.Width != 320 {
		t.Errorf("Width = %d, want 320", res.Width)
	}
}

func TestLayoutCommandCycle(t *testing.T) {
	dir := workspace(t, map[string]string{"cyclic.toml": cyclicScene})
	_, err := runCLI(t, "layout", filepath.Join(dir, "cyclic.toml"))
	if err == nil || !strings.Contains(err.Error(), "a -> b -> a") {
		t.Errorf("layout(cyclic) error = %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene, "cyclic.toml": cyclicScene})

	out, err := runCLI(t, "check", filepath.Join(dir, "card.toml"))
	if err != nil {
		t.Fatalf("check(card) error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "3 boxes") {
		t.Errorf("output = %q", out)
	}

	out, err = runCLI(t, "check", filepath.Join(dir, "card.toml"), filepath.Join(dir, "cyclic.toml"))
	if err == nil || !strings.Contains(err.Error(), "1 of 2 scenes failed") {
		t.Errorf("check error = %v", err)
	}
	if !strings.Contains(out, "CYCLE_DETECTED") {
		t.Errorf("output = %q, want CYCLE_DETECTED", out)
	}
}

func TestGraphCommand(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})
	out, err := runCLI(t, "graph", "-f", "dot", "-o", "-", filepath.Join(dir, "card.toml"))
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	if !strings.Contains(out, `"label" -> "icon" [label="left"];`) {
		t.Errorf("graph output:\n%s", out)
	}

	if _, err := runCLI(t, "graph", "-f", "png", filepath.Join(dir, "card.toml")); err == nil {
		t.Error("graph -f png should fail")
	}

	if _, err := runCLI(t, "graph", "-f", "dot", filepath.Join(dir, "card.toml")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "card.graph.dot")); err != nil {
		t.Error(err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})
	dst := filepath.Join(dir, "card.json")
	if out, err := runCLI(t, "convert", filepath.Join(dir, "card.toml"), dst); err != nil {
		t.Fatalf("convert error: %v\n%s", err, out)
	}
	s, err := scene.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "card" || len(s.Boxes) != 3 || s.Boxes[1].Anchor.Left != "icon" {
		t.Errorf("converted scene = %+v", s)
	}
}

func TestInspectPlain(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})
	out, err := runCLI(t, "inspect", "--plain", filepath.Join(dir, "card.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"card", "320x", "label", "(68,8)-(188,28)", "badge"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := workspace(t, map[string]string{"card.toml": cardScene})

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := runCLI(t, "layout", filepath.Join(dir, "card.toml")); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	out, err = runCLI(t, "cache", "clear", "--cache", "none")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is disabled") {
		t.Errorf("cache clear (none) output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s output does not mention %s", shell, appName)
		}
	}
}

func TestInspectModel(t *testing.T) {
	res, err := layout.Layout(layout.Container{
		Width:  layout.Exactly(100),
		Height: layout.Exactly(100),
		Boxes: []layout.Box{
			{ID: "a", Width: layout.Fixed(10), Height: layout.Fixed(10)},
			{ID: "b", Width: layout.Fixed(10), Height: layout.Fixed(10)},
			{Visibility: layout.Collapsed},
		},
	}, layout.ContentMeasurer{})
	if err != nil {
		t.Fatal(err)
	}
	decls := []scene.BoxDecl{{ID: "a", Width: "10", Height: "10"}, {ID: "b"}, {}}
	m := NewInspectModel("test", res, decls)
	m.Height = 2

	press := func(m InspectModel, key string) InspectModel {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		return next.(InspectModel)
	}

	m = press(m, "j")
	m = press(m, "j")
	m = press(m, "j")
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("after 3x down: cursor %d offset %d, want 2 and 1", m.Cursor, m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "#2") || !strings.Contains(view, "collapsed") {
		t.Errorf("view of collapsed box:\n%s", view)
	}

	m = press(m, "g")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("after home: cursor %d offset %d", m.Cursor, m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "10 x 10") || !strings.Contains(view, "[1/3]") {
		t.Errorf("view of first box:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestFormatMargins(t *testing.T) {
	ms := [4]layout.Margin{{Px: 8, Valid: true}, {}, {Px: -2, Valid: true}, {}}
	if got := formatMargins(ms); got != "8 - -2 -" {
		t.Errorf("formatMargins() = %q", got)
	}
}
