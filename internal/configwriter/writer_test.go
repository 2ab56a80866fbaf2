package configwriter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testWriter() *Writer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleSettings() map[string]any {
	return map[string]any{
		"resolution":       "4K",
		"fps":              120,
		"upscaler":         "DLSS",
		"upscaler_quality": "Balanced",
		"rtx":              true,
		"render_scale_pct": 80,
	}
}

func TestWriteINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	w := testWriter()

	if err := w.Write(path, sampleSettings(), ""); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, "fps=120\n") {
		t.Errorf("ini missing fps line:\n%s", body)
	}
	if !strings.Contains(body, "upscaler=DLSS\n") {
		t.Errorf("ini missing upscaler line:\n%s", body)
	}

	// Keys come out sorted, so repeat writes are byte-stable.
	if err := w.Write(path, sampleSettings(), ""); err != nil {
		t.Fatal(err)
	}
	again, _ := os.ReadFile(path)
	if string(again) != body {
		t.Error("repeat write produced different bytes")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	w := testWriter()
	in := sampleSettings()

	if err := w.Write(path, in, ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := w.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %#v\nout: %#v", in, out)
	}
}

func TestXMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.xml")
	w := testWriter()

	if err := w.Write(path, sampleSettings(), ""); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "<Settings>") {
		t.Errorf("missing root element:\n%s", data)
	}
	if !strings.Contains(string(data), "<fps>120</fps>") {
		t.Errorf("missing fps element:\n%s", data)
	}

	out, err := w.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// XML values come back as strings.
	if out["fps"] != "120" {
		t.Errorf("fps = %v", out["fps"])
	}
	if out["upscaler"] != "DLSS" {
		t.Errorf("upscaler = %v", out["upscaler"])
	}
	if len(out) != len(sampleSettings()) {
		t.Errorf("read %d keys, want %d", len(out), len(sampleSettings()))
	}
}

func TestXMLEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.xml")
	w := testWriter()

	if err := w.Write(path, map[string]any{"title": `<A & "B">`}, ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "&lt;A &amp; &quot;B&quot;&gt;") {
		t.Errorf("value not escaped:\n%s", data)
	}
}

func TestWriteUnknownExtensionDebugDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.settings")
	w := testWriter()

	if err := w.Write(path, map[string]any{"fps": 90, "rtx": false}, ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// fmt prints maps in sorted key order.
	if got := string(data); got != "map[fps:90 rtx:false]" {
		t.Errorf("debug dump = %q", got)
	}

	out, err := w.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out["raw"] != "map[fps:90 rtx:false]" {
		t.Errorf("raw read = %v", out["raw"])
	}
}

func TestFormatHintOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.settings")
	w := testWriter()

	if err := w.Write(path, map[string]any{"fps": 90}, "ini"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "fps=90\n" {
		t.Errorf("hinted ini = %q", data)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		hint string
		want string
	}{
		{`C:\Games\ES6\settings.ini`, "", "ini"},
		{"game.cfg", "", "ini"},
		{"alife.ltx", "", "ini"},
		{"settings.json", "", "json"},
		{"settings.jsn", "", "json"},
		{"settings.XML", "", "xml"},
		{"user.settings", "", "raw"},
		{"noext", "", "raw"},
		{"user.settings", "JSON", "json"},
	}
	for _, tt := range tests {
		if got := formatFor(tt.path, tt.hint); got != tt.want {
			t.Errorf("formatFor(%q, %q) = %q, want %q", tt.path, tt.hint, got, tt.want)
		}
	}
}

func TestWriteBacksUpExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	original := "fps=30\nold=true\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	w := testWriter()
	if err := w.Write(path, sampleSettings(), ""); err != nil {
		t.Fatalf("Write: %v", err)
	}

	bak, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(bak) != original {
		t.Errorf("backup = %q, want the pre-write contents %q", bak, original)
	}
}

func TestBackupMissingSourceIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	w := testWriter()

	bak, err := w.Backup(path)
	if err != nil {
		t.Fatalf("Backup of missing file errored: %v", err)
	}
	if bak != "" {
		t.Errorf("backup path = %q, want empty", bak)
	}
	if _, err := os.Stat(path + BackupSuffix); !os.IsNotExist(err) {
		t.Error("no backup file should exist")
	}
}

func TestRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	original := "fps=30\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	w := testWriter()
	if err := w.Write(path, sampleSettings(), ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Restore(path); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("restored = %q, want %q", data, original)
	}
}

func TestRestoreWithoutBackupErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := testWriter().Restore(path); err == nil {
		t.Error("expected error restoring without a backup")
	}
}

func TestINIRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	body := "fps=120\nupscaler = DLSS \n\nnot a pair\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := testWriter().Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out["fps"] != "120" {
		t.Errorf("fps = %v", out["fps"])
	}
	if out["upscaler"] != "DLSS" {
		t.Errorf("upscaler = %v, want surrounding space trimmed", out["upscaler"])
	}
	if len(out) != 2 {
		t.Errorf("read %d keys, want 2", len(out))
	}
}
