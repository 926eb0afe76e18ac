package install

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/folco"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// IconFile is the name of the icon written into customized directories.
	IconFile = ".folco-icon.png"
	// DesktopFile is the per directory settings file read by file managers
	// following the freedesktop conventions.
	DesktopFile = ".directory"

	desktopSection = "[Desktop Entry]"
	iconKey        = "Icon"
	// previousKey keeps the icon which was set before folco replaced it.
	previousKey = "X-Folco-Previous-Icon"
)

// Freedesktop installs icons the way Dolphin, Nautilus and most other
// freedesktop file managers expect them.
type Freedesktop struct {
	Logger *zap.Logger
}

var _ folco.Installer = (*Freedesktop)(nil)

// Install writes the icon and points the directory settings at it. Other
// entries of an existing .directory file are preserved, and an icon set by
// someone else is remembered so Remove can restore it.
func (f *Freedesktop) Install(ctx context.Context, img *folco.Composite, dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		return err
	}
	icon := filepath.Join(dir, IconFile)
	if err := writeFile(icon, buf.Bytes(), 0o644); err != nil {
		return classify(err)
	}

	settings := filepath.Join(dir, DesktopFile)
	current, err := readOptional(settings)
	if err != nil {
		return classify(err)
	}
	abs, err := filepath.Abs(icon)
	if err != nil {
		abs = icon
	}
	if err := writeFile(settings, []byte(setIcon(current, abs)), 0o644); err != nil {
		return classify(err)
	}
	f.logger().Debug("icon installed", zap.String("path", dir))
	return nil
}

// Remove deletes the icon and its entry in the directory settings, restoring
// the icon it replaced. Icon entries which do not point at IconFile are left
// alone. The settings file itself is removed once nothing else is left in it.
func (f *Freedesktop) Remove(ctx context.Context, dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	settings := filepath.Join(dir, DesktopFile)
	current, rerr := readOptional(settings)
	switch {
	case rerr != nil:
		err = multierr.Append(err, classify(rerr))
	case current != "":
		rest, empty := unsetIcon(current)
		switch {
		case empty:
			err = multierr.Append(err, removeFile(settings))
		case rest != current:
			err = multierr.Append(err, writeFile(settings, []byte(rest), 0o644))
		}
	}
	err = multierr.Append(err, removeFile(filepath.Join(dir, IconFile)))
	if err != nil {
		return classify(err)
	}
	f.logger().Debug("icon removed", zap.String("path", dir))
	return nil
}

func (f *Freedesktop) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func readOptional(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return string(b), err
}

// setIcon sets the Icon key of the desktop entry section, adding the
// section when it is missing. A foreign icon is kept under previousKey.
func setIcon(content, icon string) string {
	lines := splitLines(content)
	entry := iconKey + "=" + icon

	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == desktopSection {
			start = i
			break
		}
	}
	if start < 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, desktopSection, entry)
		return strings.Join(lines, "\n") + "\n"
	}

	end := sectionEnd(lines, start)
	remembered := false
	for i := start + 1; i < end; i++ {
		if _, ok := keyValue(lines[i], previousKey); ok {
			remembered = true
		}
	}
	for i := start + 1; i < end; i++ {
		old, ok := keyValue(lines[i], iconKey)
		if !ok {
			continue
		}
		lines[i] = entry
		if !remembered && !isOwnIcon(old) {
			lines = insertLine(lines, i+1, previousKey+"="+old)
		}
		return strings.Join(lines, "\n") + "\n"
	}
	lines = insertLine(lines, start+1, entry)
	return strings.Join(lines, "\n") + "\n"
}

// unsetIcon drops the Icon key of the desktop entry section when it points
// at IconFile, putting back the remembered icon if there is one. It reports
// whether the remaining content holds no entries at all.
func unsetIcon(content string) (string, bool) {
	lines := splitLines(content)

	previous := ""
	inEntry := false
	for _, l := range lines {
		if t := strings.TrimSpace(l); strings.HasPrefix(t, "[") {
			inEntry = t == desktopSection
		}
		if v, ok := keyValue(l, previousKey); ok && inEntry {
			previous = v
		}
	}

	var kept []string
	inEntry = false
	for _, l := range lines {
		if t := strings.TrimSpace(l); strings.HasPrefix(t, "[") {
			inEntry = t == desktopSection
		}
		if !inEntry {
			kept = append(kept, l)
			continue
		}
		if _, ok := keyValue(l, previousKey); ok {
			continue
		}
		if v, ok := keyValue(l, iconKey); ok && isOwnIcon(v) {
			if previous != "" {
				kept = append(kept, iconKey+"="+previous)
			}
			continue
		}
		kept = append(kept, l)
	}

	empty := true
	for _, l := range kept {
		t := strings.TrimSpace(l)
		if t != "" && !strings.HasPrefix(t, "[") && !strings.HasPrefix(t, "#") {
			empty = false
			break
		}
	}
	return strings.Join(kept, "\n") + "\n", empty
}

func sectionEnd(lines []string, start int) int {
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "[") {
			return i
		}
	}
	return len(lines)
}

// keyValue returns the value of l when it is an entry for key.
func keyValue(l, key string) (string, bool) {
	k, v, ok := strings.Cut(strings.TrimSpace(l), "=")
	if !ok || strings.TrimSpace(k) != key {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func isOwnIcon(value string) bool {
	return filepath.Base(value) == IconFile
}

func insertLine(lines []string, at int, l string) []string {
	lines = append(lines, "")
	copy(lines[at+1:], lines[at:])
	lines[at] = l
	return lines
}

func splitLines(content string) []string {
	content = strings.TrimRight(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
