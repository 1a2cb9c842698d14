// Package opc reads entries out of an OPC (Open Packaging Conventions)
// ZIP container, the physical layer beneath DOCX, XLSX, and PPTX files.
//
// The archive is reopened for every call rather than held open, so that
// concurrent readers of the same underlying file never contend on an
// exclusive handle.
package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidArchive indicates the file is not a readable ZIP container
	// or is missing the OOXML content-types manifest.
	ErrInvalidArchive = errors.New("opc: invalid or corrupted archive")
	// ErrMissingEntry indicates a required entry is absent from a container
	// that otherwise parsed. Inside a validated package this is a
	// consistency violation, not a lookup miss.
	ErrMissingEntry = errors.New("opc: required entry missing")
)

// contentTypesEntry is the manifest every OOXML package must carry.
const contentTypesEntry = "[Content_Types].xml"

// Archive reads entries from an OPC package on disk.
type Archive struct {
	path string
}

// New returns an Archive for the file at path. The file is not opened
// until an entry is read.
func New(path string) *Archive {
	return &Archive{path: path}
}

// Validate checks that the container opens as a ZIP archive and carries
// the content-types manifest.
func (a *Archive) Validate() error {
	zr, err := zip.OpenReader(a.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == contentTypesEntry {
			return nil
		}
	}
	return fmt.Errorf("%w: no %s", ErrInvalidArchive, contentTypesEntry)
}

// ReadEntry extracts a single named entry into memory. A missing entry
// yields ErrMissingEntry.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	zr, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, name, err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingEntry, name)
}

// HasEntry reports whether the named entry exists in the container.
func (a *Archive) HasEntry(name string) bool {
	zr, err := zip.OpenReader(a.path)
	if err != nil {
		return false
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}
