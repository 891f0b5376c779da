// Package sheet reads and updates the campaign contact sheet, a CSV file
// with one row per phone number. The sheet doubles as the campaign's
// progress record: a row with an answer or status is considered done.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Column layout of the contact sheet.
const (
	columnPhone  = 0
	columnName   = 1
	columnAnswer = 2
	columnStatus = 3
)

// Status values written back to the sheet.
const (
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

// Row is one contact in the campaign sheet. Index is the 1-based data row
// position, stable across saves, used to address the row in call metadata.
type Row struct {
	Index  int
	Phone  string
	Name   string
	Answer string
	Status string
}

// Complete reports whether the row already holds a result.
func (r Row) Complete() bool {
	return r.Answer != "" || r.Status != ""
}

// Store is a contact sheet backed by a single CSV file.
type Store struct {
	path string
}

// NewStore opens a store for the sheet at path. The file is read lazily.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all contact rows. Rows with fewer than two fields are ignored,
// matching hand-edited sheets with stray blank lines.
func (s *Store) Load() ([]Row, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s: missing header row", s.path)
	}
	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		row := Row{
			Index: i + 1,
			Phone: strings.TrimSpace(record[columnPhone]),
			Name:  strings.TrimSpace(record[columnName]),
		}
		if len(record) > columnAnswer {
			row.Answer = strings.TrimSpace(record[columnAnswer])
		}
		if len(record) > columnStatus {
			row.Status = strings.TrimSpace(record[columnStatus])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveResult writes an answer payload and status into the row at rowIndex
// with a read-modify-write of the whole file.
func (s *Store) SaveResult(rowIndex int, answersJSON, status string) error {
	records, err := s.readAll()
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex >= len(records) {
		return fmt.Errorf("sheet %s: no row %d", s.path, rowIndex)
	}
	record := records[rowIndex]
	for len(record) <= columnStatus {
		record = append(record, "")
	}
	record[columnAnswer] = answersJSON
	record[columnStatus] = status
	records[rowIndex] = record

	return s.writeAll(records)
}

func (s *Store) readAll() ([][]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return records, nil
}

func (s *Store) writeAll(records [][]string) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		file.Close()
		return fmt.Errorf("write sheet: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	return nil
}
