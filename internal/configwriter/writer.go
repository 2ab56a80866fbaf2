// Package configwriter serializes settings maps into a game's native config
// file format, with a backup-before-write guarantee and a matching restore
// operation.
package configwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BackupSuffix is appended to a config path to form its backup path. Each
// write overwrites the previous backup; there is exactly one backup slot per
// file.
const BackupSuffix = ".bak"

// Writer writes game config files. Format selection is by file extension
// unless a hint overrides it; unknown extensions fall through to a
// debug-string dump of the settings map, which some engines (and our oldest
// profiles) rely on.
type Writer struct {
	log *slog.Logger
}

// New returns a Writer.
func New(log *slog.Logger) *Writer {
	return &Writer{log: log}
}

// Write backs up the existing file, then serializes settings into path. The
// formatHint ("ini", "json", "xml"), when non-empty, overrides extension
// detection. If the backup step fails the original file is left untouched and
// the write is aborted.
func (w *Writer) Write(path string, settings map[string]any, formatHint string) error {
	if _, err := w.Backup(path); err != nil {
		return fmt.Errorf("backup before write: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch formatFor(path, formatHint) {
	case "ini":
		data = encodeINI(settings)
	case "json":
		data, err = json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json config: %w", err)
		}
	case "xml":
		data = encodeXML(settings)
	default:
		// Debug-string dump. Deliberately preserved for unrecognized
		// extensions; fmt prints maps with sorted keys so the output
		// is stable.
		data = []byte(fmt.Sprintf("%v", settings))
		w.log.Info("unrecognized config extension, writing debug dump", "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	w.log.Info("config written", "path", path, "keys", len(settings))
	return nil
}

// Backup copies path to path+BackupSuffix, overwriting any prior backup. A
// missing source file is not an error: there is nothing to protect yet, and
// the returned backup path is empty.
func (w *Writer) Backup(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat config %s: %w", path, err)
	}

	backupPath := path + BackupSuffix
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("copy to backup %s: %w", backupPath, err)
	}

	w.log.Info("config backup created", "backup", backupPath)
	return backupPath, nil
}

// Restore copies the backup over the config file. There is no guard against
// restoring twice or against a tampered backup; the backup slot is trusted.
func (w *Writer) Restore(path string) error {
	backupPath := path + BackupSuffix
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("no backup for %s: %w", path, err)
	}

	if err := copyFile(backupPath, path); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}

	w.log.Info("config restored from backup", "path", path)
	return nil
}

// formatFor resolves the output format from the hint or the file extension.
func formatFor(path, hint string) string {
	if hint != "" {
		return strings.ToLower(hint)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg", ".ltx":
		return "ini"
	case ".json", ".jsn":
		return "json"
	case ".xml":
		return "xml"
	default:
		return "raw"
	}
}

// encodeINI renders flat key=value lines in sorted key order.
func encodeINI(settings map[string]any) []byte {
	keys := sortedKeys(settings)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, settings[k])
	}
	return []byte(b.String())
}

// encodeXML renders a flat single-level element tree under <Settings>, one
// child element per key, in sorted key order.
func encodeXML(settings map[string]any) []byte {
	keys := sortedKeys(settings)
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Settings>\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  <%s>%s</%s>\n", k, escapeXML(fmt.Sprintf("%v", settings[k])), k)
	}
	b.WriteString("</Settings>\n")
	return []byte(b.String())
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
