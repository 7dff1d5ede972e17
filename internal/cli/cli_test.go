package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatbody/gbkit/internal/converter"
	"github.com/greatbody/gbkit/internal/inspector"
	"github.com/greatbody/gbkit/internal/transcoder"
)

// run executes gbkit with args against a config file that does not exist,
// so defaults apply unless args override --config.
func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	full := append([]string{}, args...)
	if !containsFlag(args, "--config") {
		full = append(full, "--config", filepath.Join(t.TempDir(), "absent.json"))
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}

func TestInspectTable(t *testing.T) {
	out, err := run(t, nil, "inspect", "--color", "never", "A中")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"CHAR", "UNICODE", "UTF-16", "UTF-8"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"A", "U+0041", "0041", "41"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"中", "U+4E2D", "4E2D", "E4", "B8", "AD"}, strings.Fields(lines[2]))
	assert.NotContains(t, out, "\033[")
}

func TestInspectJSONFromStdin(t *testing.T) {
	out, err := run(t, strings.NewReader("😀\n"), "inspect", "--json")
	require.NoError(t, err)

	var got []inspector.CharInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "😀", got[0].Char)
	assert.Equal(t, "F0 9F 98 80", got[0].UTF8Hex)
	assert.Equal(t, "D83D DE00", got[0].UTF16Hex)
	assert.Equal(t, "1F600", got[0].UnicodeHex)
}

func TestInspectTooltip(t *testing.T) {
	out, err := run(t, nil, "inspect", "--tooltip", "中")
	require.NoError(t, err)
	assert.Equal(t, "Char: 中\nUTF-8: E4 B8 AD\nUTF-16: 4E2D\nUnicode: U+4E2D\n", out)
}

func TestInspectColor(t *testing.T) {
	out, err := run(t, nil, "inspect", "--color", "always", "ab")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\033[48;5;"))

	_, err = run(t, nil, "inspect", "--color", "rainbow", "ab")
	assert.Error(t, err)
}

func TestInspectControlCharacter(t *testing.T) {
	out, err := run(t, nil, "inspect", "--color", "never", "a\tb")
	require.NoError(t, err)
	assert.Contains(t, out, `\t`)
	assert.Contains(t, out, "U+0009")
}

func TestPaletteStableColors(t *testing.T) {
	p := newPalette(true, rand.New(rand.NewPCG(1, 2)))
	first := p.paint("中", "E4 B8 AD")
	assert.Equal(t, first, p.paint("中", "E4 B8 AD"))
	assert.True(t, strings.HasSuffix(first, ansiReset))

	assert.Equal(t, "41", newPalette(false, nil).paint("A", "41"))
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, colorEnabled("always", &buf))
	assert.False(t, colorEnabled("never", &buf))
	assert.False(t, colorEnabled("auto", &buf), "a buffer is not a terminal")
}

func TestConvertCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("你好"), 0o600))

	out, err := run(t, nil, "convert", src, "--to", "GBK")
	require.NoError(t, err)

	dest := filepath.Join(filepath.Dir(src), "notes-GBK.txt")
	assert.Contains(t, out, "OK: "+dest)
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC4, 0xE3, 0xBA, 0xC3}, got)
}

func TestConvertCommandUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gbkit.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`default_target = "UTF-8"`), 0o600))
	src := filepath.Join(dir, "legacy.txt")
	require.NoError(t, os.WriteFile(src, []byte{0xC4, 0xE3, 0xBA, 0xC3}, 0o600))

	_, err := run(t, nil, "convert", src, "--config", cfgPath)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "legacy-UTF-8.txt"))
	require.NoError(t, err)
	assert.Equal(t, "你好", string(got))
}

func TestConvertCommandExtensionFilter(t *testing.T) {
	src := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(src, []byte("abc"), 0o600))

	_, err := run(t, nil, "convert", src, "--to", "GBK")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, nil, "convert", src, "--to", "GBK", "--force")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(src), "image-GBK.txt"))
}

func TestConvertCommandErrors(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.txt")

	_, err := run(t, nil, "convert", src, "--to", "Shift-JIS")
	assert.ErrorIs(t, err, converter.ErrUnsupportedEncoding)

	_, err = run(t, nil, "convert", src, "--to", "GBK")
	assert.ErrorIs(t, err, converter.ErrFileOpen)

	_, err = run(t, nil, "convert")
	assert.Error(t, err)
}

func TestConvertCommandReplace(t *testing.T) {
	src := filepath.Join(t.TempDir(), "emoji.txt")
	require.NoError(t, os.WriteFile(src, []byte("hi 😀"), 0o600))

	_, err := run(t, nil, "convert", src, "--to", "GBK")
	assert.ErrorIs(t, err, converter.ErrUnrepresentable)

	_, err = run(t, nil, "convert", src, "--to", "GBK", "--replace")
	assert.NoError(t, err)
}

func TestDetectCommand(t *testing.T) {
	dir := t.TempDir()
	gbk := filepath.Join(dir, "legacy.txt")
	require.NoError(t, os.WriteFile(gbk, []byte{0xC4, 0xE3, 0xBA, 0xC3, 0xCA, 0xC0, 0xBD, 0xE7}, 0o600))

	out, err := run(t, nil, "detect", "--json", gbk)
	require.NoError(t, err)

	var report detectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "GBK", report.Encoding)
	assert.Equal(t, "UTF-8", report.Suggested)
	assert.Equal(t, "你好世界", report.Preview)

	utf := filepath.Join(dir, "modern.txt")
	require.NoError(t, os.WriteFile(utf, []byte("plain text"), 0o600))
	out, err = run(t, nil, "detect", utf)
	require.NoError(t, err)
	assert.Contains(t, out, utf+": UTF-8")
	assert.Contains(t, out, "preview: plain text")
	assert.Contains(t, out, "--to GBK")

	_, err = run(t, nil, "detect", filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCodecsCommand(t *testing.T) {
	out, err := run(t, nil, "codecs")
	require.NoError(t, err)
	assert.Contains(t, out, "UTF-8")
	assert.Contains(t, out, "GBK")
	assert.Contains(t, out, "yes")
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gbkit.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"color": "rainbow"}`), 0o600))

	_, err := run(t, nil, "codecs", "--config", cfgPath)
	assert.Error(t, err)
}

func TestDecodePreview(t *testing.T) {
	got, err := decodePreview(transcoder.EncodingUTF8, []byte("\uFEFFfirst line\r\nsecond"))
	require.NoError(t, err)
	assert.Equal(t, "first line", got)

	got, err = decodePreview(transcoder.EncodingUTF8, bytes.Repeat([]byte("中"), previewRunes+5))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("中", previewRunes)+"...", got)
}
