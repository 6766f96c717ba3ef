// Package sweep removes files that outlived their use, such as engine
// sockets left behind by a process that was killed.
package sweep

import (
	"io/fs"
	"os"
	"time"

	"github.com/vhls-cli/vhls/filesystem"
	"github.com/vhls-cli/vhls/log"
)

// TTL is how old a leftover file must be before it is removed.
const TTL = 24 * time.Hour

// Run removes regular files and sockets under dir whose modification time
// is older than ttl. It returns how many were removed.
func Run(dir string, ttl time.Duration, now time.Time) int {
	fsys := filesystem.API()
	removed := 0

	_ = fsys.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if now.Sub(info.ModTime()) <= ttl {
			return nil
		}
		if err := fsys.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warnf("sweep %s: %v", path, err)
			return nil
		}
		removed++
		return nil
	})

	if removed > 0 {
		log.Infof("swept %d stale files from %s", removed, dir)
	}
	return removed
}

// CollectGarbage sweeps dir in the background.
func CollectGarbage(dir string) {
	go Run(dir, TTL, time.Now())
}
