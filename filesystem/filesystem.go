// Package filesystem provides a swappable filesystem backend shared by config, logs and caches.
//
// It wraps afero so tests can run entirely in memory.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// Set replaces the active backend.
func Set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	Set(afero.NewOsFs())
}

// SetMemMapFs switches to a volatile in-memory backend for tests.
func SetMemMapFs() {
	Set(afero.NewMemMapFs())
}
