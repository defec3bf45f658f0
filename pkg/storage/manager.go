package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk only when S3_BUCKET is set. Call once at startup.
func Connect() {
	defaultDisk = config.Get("STORAGE_DISK", "local")

	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the disk registered under name ("local" or "s3"). It panics
// on an unconfigured name since that is a wiring mistake, not a runtime
// condition.
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk installs a custom Disk at boot time.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// The helpers below proxy to the default disk.

func Put(path string, content []byte) error    { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

func Get(path string) ([]byte, error)              { return defaultD().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

func Exists(path string) bool  { return defaultD().Exists(path) }
func Missing(path string) bool { return defaultD().Missing(path) }

func Delete(path string) error { return defaultD().Delete(path) }
func URL(path string) string   { return defaultD().URL(path) }

func Copy(src, dst string) error { return defaultD().Copy(src, dst) }
func Move(src, dst string) error { return defaultD().Move(src, dst) }

func Size(path string) (int64, error)              { return defaultD().Size(path) }
func LastModified(path string) (time.Time, error)  { return defaultD().LastModified(path) }
func Files(directory string) ([]string, error)     { return defaultD().Files(directory) }
func AllFiles(directory string) ([]string, error)  { return defaultD().AllFiles(directory) }
func Directories(directory string) ([]string, error) {
	return defaultD().Directories(directory)
}

func MakeDirectory(path string) error   { return defaultD().MakeDirectory(path) }
func DeleteDirectory(path string) error { return defaultD().DeleteDirectory(path) }
