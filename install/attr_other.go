//go:build !windows

package install

import (
	"github.com/esimov/folco"
	"go.uber.org/zap"
)

func newPlatform(logger *zap.Logger) folco.Installer {
	return &Freedesktop{Logger: logger}
}

// The file attributes used by Explorer have no counterpart here; the
// Explorer backend still works and only writes the files.

func markHidden(string) error      { return nil }
func clearAttributes(string) error { return nil }
func markReadOnly(string) error    { return nil }
func clearReadOnly(string) error   { return nil }

func isReadOnly(string) (bool, error) { return false, nil }
