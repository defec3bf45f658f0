// Package storage abstracts file storage behind a Disk interface with two
// drivers: "local" for the filesystem and "s3" for S3-compatible object
// stores. Package-level helpers proxy to the default disk chosen by the
// STORAGE_DISK setting.
//
//	storage.Connect()
//	storage.Put("products/7/photo.jpg", data)
//	url := storage.URL("products/7/photo.jpg")
//	storage.Use("s3").Put("backups/dump.sql.gz", data)
package storage

import (
	"io"
	"time"
)

// Disk is one storage backend.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the file's full content.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser the caller must close.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file is present at path.
	Exists(path string) bool

	// Missing is the inverse of Exists.
	Missing(path string) bool

	// Size returns the file's size in bytes.
	Size(path string) (int64, error)

	// LastModified returns the file's modification time.
	LastModified(path string) (time.Time, error)

	// URL returns the public URL serving path.
	URL(path string) string

	// Delete removes a file; deleting a missing file is not an error.
	Delete(path string) error

	// Copy duplicates src at dst.
	Copy(src, dst string) error

	// Move renames src to dst.
	Move(src, dst string) error

	// Files lists the filenames directly inside directory.
	Files(directory string) ([]string, error)

	// AllFiles lists every file under directory, recursively.
	AllFiles(directory string) ([]string, error)

	// Directories lists the immediate subdirectories of directory.
	Directories(directory string) ([]string, error)

	// MakeDirectory creates directory and any parents.
	MakeDirectory(path string) error

	// DeleteDirectory removes directory and everything under it.
	DeleteDirectory(path string) error
}
