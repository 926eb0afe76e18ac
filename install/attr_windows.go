//go:build windows

package install

import (
	"github.com/esimov/folco"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

func newPlatform(logger *zap.Logger) folco.Installer {
	return &Explorer{Logger: logger}
}

func setAttributes(path string, set, unset uint32) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, (attrs|set)&^unset)
}

func markHidden(path string) error {
	return setAttributes(path, windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM, 0)
}

func clearAttributes(path string) error {
	return setAttributes(path, 0, windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM|windows.FILE_ATTRIBUTE_READONLY)
}

func markReadOnly(dir string) error {
	return setAttributes(dir, windows.FILE_ATTRIBUTE_READONLY, 0)
}

func clearReadOnly(dir string) error {
	return setAttributes(dir, 0, windows.FILE_ATTRIBUTE_READONLY)
}

func isReadOnly(dir string) (bool, error) {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return false, err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false, err
	}
	return attrs&windows.FILE_ATTRIBUTE_READONLY != 0, nil
}
