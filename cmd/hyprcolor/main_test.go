package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leonardotrapani/hyprcolor/internal/bus"
	"github.com/leonardotrapani/hyprcolor/internal/color"
	"github.com/leonardotrapani/hyprcolor/internal/deps"
	"github.com/leonardotrapani/hyprcolor/internal/swatch"
	"github.com/leonardotrapani/hyprcolor/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func plainRenderer() *swatch.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return swatch.New(r)
}

func TestResolvePlain(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, "resolve", "--plain", "quiero", "el", "azul")
	require.NoError(t, err)
	assert.Equal(t, "#0000FF\n", out)

	out, err = run(t, "resolve", "--plain", "pinta de color #1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, "#1a2B3c\n", out)

	_, err = run(t, "resolve", "--plain", "hola")
	require.Error(t, err)
	assert.Equal(t, swatch.NoColorText, err.Error())
}

func TestResolveSwatch(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, "resolve", "Rojo")
	require.NoError(t, err)
	assert.Contains(t, out, "#FF0000")
	assert.Contains(t, out, `matched "rojo"`)

	out, err = run(t, "resolve", "me siento enamorado")
	require.NoError(t, err)
	assert.Contains(t, out, `matched "morado"`)

	out, err = run(t, "resolve", "pinta #1A2B3C")
	require.NoError(t, err)
	assert.Contains(t, out, "matched a literal hex code")

	out, err = run(t, "resolve", "nada")
	require.NoError(t, err)
	assert.Contains(t, out, swatch.NoColorText)
	assert.NotContains(t, out, "matched")
}

func TestResolveRequiresText(t *testing.T) {
	_, err := run(t, "resolve")
	assert.Error(t, err)
}

func TestColorsCSV(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, "colors", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 41)
	assert.Equal(t, "name,hex", lines[0])
	assert.Equal(t, "rojo,#FF0000", lines[1])
	assert.Equal(t, "verde limón,#ADFF2F", lines[40])
}

func TestColorsUsesConfiguredTable(t *testing.T) {
	testutil.IsolateHome(t)

	dir := t.TempDir()
	table := filepath.Join(dir, "colores.csv")
	require.NoError(t, os.WriteFile(table, []byte("name,hex\nmagenta,#FF00FF\n"), 0o644))

	configDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "hyprcolor")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"),
		[]byte("[colors]\ntable_file = \""+table+"\"\n"), 0o644))

	out, err := run(t, "colors", "--csv")
	require.NoError(t, err)
	assert.Equal(t, "name,hex\nmagenta,#FF00FF\n", out)

	out, err = run(t, "resolve", "--plain", "un magenta")
	require.NoError(t, err)
	assert.Equal(t, "#FF00FF\n", out)
}

func TestColorsFilter(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, "colors", "--csv", "--filter", "VERDE")
	require.NoError(t, err)
	assert.Equal(t, "name,hex\nverde,#008000\nverde esmeralda,#50C878\nverde oliva,#6B8E23\nverde limón,#ADFF2F\n", out)

	out, err = run(t, "colors", "--csv", "-f", "limon")
	require.NoError(t, err)
	assert.Equal(t, "name,hex\nverde limón,#ADFF2F\n", out)

	_, err = run(t, "colors", "--filter", "xyz")
	assert.EqualError(t, err, `no colour name matches "xyz"`)
}

func TestCheckProto(t *testing.T) {
	assert.NoError(t, checkProto(bus.ProtoVer))
	assert.NoError(t, checkProto("1.4"))
	assert.ErrorContains(t, checkProto("2.0"), "protocol mismatch")
	assert.ErrorContains(t, checkProto(""), "invalid daemon protocol version")
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTable(&out, plainRenderer(), color.Default))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 40)
	assert.Equal(t, "     #FF0000  rojo", lines[0])
}

func TestPrintLast(t *testing.T) {
	var out bytes.Buffer
	resp := bus.Response{Kind: "LAST", Fields: map[string]string{
		"found": "true", "hex": "#50C878", "transcript": "esmeralda",
	}}
	require.NoError(t, printLast(&out, plainRenderer(), resp))
	assert.Contains(t, out.String(), `"esmeralda"`)
	assert.Contains(t, out.String(), "#50C878")

	out.Reset()
	resp.Fields["found"] = "false"
	resp.Fields["hex"] = ""
	require.NoError(t, printLast(&out, plainRenderer(), resp))
	assert.Contains(t, out.String(), swatch.NoColorText)

	err := printLast(&out, plainRenderer(), bus.Response{Kind: "ERR", Fields: map[string]string{"msg": "no colour resolved yet"}})
	assert.EqualError(t, err, "no colour resolved yet")
}

func TestRunDoctor(t *testing.T) {
	testutil.IsolateHome(t)

	results := []deps.Result{
		{Tool: deps.Tools[0], Status: deps.Status{Installed: true, Path: "/usr/bin/pw-record", Version: "1.2.7"}},
		{Tool: deps.Tools[1], Status: deps.Status{}},
		{Tool: deps.Tools[3], Status: deps.Status{}},
	}

	var out bytes.Buffer
	err := runDoctor(&out, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 required tool(s) missing")
	assert.Contains(t, out.String(), "/usr/bin/pw-record (1.2.7)")
	assert.Contains(t, out.String(), "not found, install wl-clipboard")
	assert.Contains(t, out.String(), "config not found")
	assert.Contains(t, out.String(), "daemon not running")
	assert.Contains(t, out.String(), filepath.Join(os.Getenv("XDG_CACHE_HOME"), "hyprcolor", bus.SockName))

	out.Reset()
	assert.NoError(t, runDoctor(&out, results[:1]))
}

func TestApplyLogLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	applyLogLevel(level, "debug")
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	applyLogLevel(level, "")
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	applyLogLevel(level, "loud")
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	applyLogLevel(level, "error")
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
}

func TestBusCommandWithoutDaemon(t *testing.T) {
	testutil.IsolateHome(t)

	_, err := run(t, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hyprcolor serve")
}
