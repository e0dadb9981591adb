// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Downloads, logs and configuration all go through the afero backend held here,
// so tests can swap the operating system for an in-memory filesystem.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs installs a fresh in-memory backend for unit tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := backend.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
