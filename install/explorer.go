package install

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/esimov/folco"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// IcoFile is the icon written into customized directories on Windows.
	IcoFile = "folder.ico"
	// DesktopIni holds the Explorer settings of a directory.
	DesktopIni = "desktop.ini"

	shellSection = "[.ShellClassInfo]"
	// folcoSection records whether the directory was read-only before the
	// icon was installed.
	folcoSection    = "[Folco]"
	keepReadOnlyKey = "KeepReadOnly"
)

// Explorer installs icons through desktop.ini, the way Windows Explorer
// expects them. Explorer only reads desktop.ini from read-only or system
// directories, so the directory is marked read-only and both files are
// hidden system files.
type Explorer struct {
	Logger *zap.Logger
}

var _ folco.Installer = (*Explorer)(nil)

// Install writes folder.ico and desktop.ini and sets the attributes
// Explorer needs to pick them up.
func (e *Explorer) Install(ctx context.Context, img *folco.Composite, dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var ico bytes.Buffer
	if err := EncodeICO(&ico, img.Image, IcoSizes); err != nil {
		return err
	}

	icoPath := filepath.Join(dir, IcoFile)
	iniPath := filepath.Join(dir, DesktopIni)

	current, err := readOptional(iniPath)
	if err != nil {
		return classify(err)
	}
	owned, keepReadOnly := parseDesktopIni(current)
	if !owned {
		// A failed lookup only costs clearing the attribute on Remove.
		keepReadOnly, _ = isReadOnly(dir)
	}

	// Hidden and system files cannot be replaced in place.
	_ = clearAttributes(icoPath)
	_ = clearAttributes(iniPath)

	if err := writeFile(icoPath, ico.Bytes(), 0o644); err != nil {
		return classify(err)
	}
	if err := writeFile(iniPath, []byte(desktopIni(IcoFile, keepReadOnly)), 0o644); err != nil {
		return classify(err)
	}

	err = multierr.Append(err, markHidden(icoPath))
	err = multierr.Append(err, markHidden(iniPath))
	err = multierr.Append(err, markReadOnly(dir))
	if err != nil {
		return classify(err)
	}
	e.logger().Debug("icon installed", zap.String("path", dir))
	return nil
}

// Remove deletes folder.ico and desktop.ini and clears the read-only
// attribute of the directory unless it was set before the install. A
// desktop.ini which was not written by Install is left untouched.
func (e *Explorer) Remove(ctx context.Context, dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	current, err := readOptional(filepath.Join(dir, DesktopIni))
	if err != nil {
		return classify(err)
	}
	owned, keepReadOnly := parseDesktopIni(current)
	if !owned {
		e.logger().Debug("no installed icon", zap.String("path", dir))
		return nil
	}

	for _, name := range []string{DesktopIni, IcoFile} {
		path := filepath.Join(dir, name)
		_ = clearAttributes(path)
		err = multierr.Append(err, removeFile(path))
	}
	if !keepReadOnly {
		err = multierr.Append(err, clearReadOnly(dir))
	}
	if err != nil {
		return classify(err)
	}
	e.logger().Debug("icon removed", zap.String("path", dir))
	return nil
}

func (e *Explorer) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// desktopIni returns the desktop.ini content pointing at the icon file.
// Explorer expects CRLF line endings.
func desktopIni(icon string, keepReadOnly bool) string {
	lines := []string{
		shellSection,
		"IconResource=" + icon + ",0",
		"IconFile=" + icon,
		"IconIndex=0",
		folcoSection,
		keepReadOnlyKey + "=" + strconv.FormatBool(keepReadOnly),
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

// parseDesktopIni reports whether content was written by desktopIni and,
// if so, whether the directory read-only attribute predates it.
func parseDesktopIni(content string) (owned, keepReadOnly bool) {
	resource := strings.ToLower("IconResource=" + IcoFile + ",0")
	section := ""
	for _, l := range splitLines(content) {
		t := strings.TrimSpace(l)
		if strings.HasPrefix(t, "[") {
			section = t
			continue
		}
		switch section {
		case shellSection:
			if strings.ToLower(strings.ReplaceAll(t, " ", "")) == resource {
				owned = true
			}
		case folcoSection:
			if v, ok := keyValue(t, keepReadOnlyKey); ok {
				keepReadOnly, _ = strconv.ParseBool(v)
			}
		}
	}
	return owned, owned && keepReadOnly
}
