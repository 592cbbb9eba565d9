package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"bookforge/logging"
)

// MinLogDiskSpace is the free space below which the log disk check warns:
// room for the live log file and all its rotated backups.
var MinLogDiskSpace = logging.DefaultRotation().Footprint()

// DiskSpace is a snapshot of the filesystem holding a path.
type DiskSpace struct {
	Path  string
	Total int64
	Free  int64 // available to unprivileged users
}

// UsedPercent returns the share of the filesystem in use, 0-100.
func (d DiskSpace) UsedPercent() float64 {
	if d.Total <= 0 {
		return 0
	}
	return float64(d.Total-d.Free) / float64(d.Total) * 100
}

// GetDiskSpace reports space for the filesystem containing path. A path
// that does not exist yet is resolved through its nearest existing parent.
func GetDiskSpace(path string) (DiskSpace, error) {
	dir := path
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				dir = filepath.Dir(dir)
			}
			break
		}
		if !os.IsNotExist(err) {
			return DiskSpace{}, fmt.Errorf("cannot access %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return DiskSpace{}, fmt.Errorf("cannot access %s: %w", path, err)
		}
		dir = parent
	}

	total, free, err := statDisk(dir)
	if err != nil {
		return DiskSpace{}, fmt.Errorf("disk space for %s: %w", dir, err)
	}
	return DiskSpace{Path: dir, Total: total, Free: free}, nil
}
