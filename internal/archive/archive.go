package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is a single named file to place in an archive.
type Entry struct {
	Name string
	Data []byte
}

// CreateZip builds a zip archive from in-memory entries, in the order given.
func CreateZip(entries []Entry) (*bytes.Buffer, error) {
	zipBuffer := new(bytes.Buffer)
	zipWriter := zip.NewWriter(zipBuffer)

	for _, entry := range entries {
		fileWriter, err := zipWriter.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
		}
		if _, err := fileWriter.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", entry.Name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}

	return zipBuffer, nil
}

// ReadZip extracts every file in a zip archive into memory.
func ReadZip(data []byte) ([]Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid zip archive: %w", err)
	}

	entries := make([]Entry, 0, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(rc); err != nil {
			rc.Close()
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		rc.Close()
		entries = append(entries, Entry{Name: f.Name, Data: buf.Bytes()})
	}

	return entries, nil
}
