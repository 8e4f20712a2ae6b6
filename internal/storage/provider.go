// Package storage defines read access to the local data directory.
package storage

import "time"

// FileInfo describes a data file.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for data directory reads.
type Provider interface {
	// List returns metadata for every .json file under dir (relative to the data root).
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to the data root).
	Read(path string) ([]byte, error)
}
