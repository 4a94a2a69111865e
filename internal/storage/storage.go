package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bdougie/streampulse/internal/models"
	"github.com/bdougie/streampulse/internal/reports"
)

const batchSize = 10 // Number of records to batch write

// Store persists the pipeline's artifacts: the per-frame record dump and the
// final report tables.
type Store interface {
	// AddRecord queues one frame record for the audit dump
	AddRecord(ctx context.Context, rec models.FrameRecord) error

	// Flush ensures all pending records are saved
	Flush() error

	// WriteTable persists one report table as a CSV file
	WriteTable(table reports.Table) error
}

// fileStore writes everything under <outputDir>/<streamName>/.
type fileStore struct {
	records    []models.FrameRecord
	mu         sync.Mutex
	outputDir  string
	streamName string
}

// NewFileStore creates a flat-file store for one run
func NewFileStore(outputDir, streamName string) *fileStore {
	return &fileStore{
		records:    []models.FrameRecord{},
		outputDir:  outputDir,
		streamName: streamName,
	}
}

// AddRecord adds a record to the batch and flushes if the batch is full
func (s *fileStore) AddRecord(ctx context.Context, rec models.FrameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)

	if len(s.records) >= batchSize {
		return s.flush()
	}
	return nil
}

// Flush writes all pending records to disk
func (s *fileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *fileStore) flush() error {
	if len(s.records) == 0 {
		return nil
	}

	dumpPath := filepath.Join(s.outputDir, s.streamName, "frame_records.json")

	var existing []models.FrameRecord
	if data, err := os.ReadFile(dumpPath); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("failed to unmarshal existing records: %v", err)
		}
	}

	all := append(existing, s.records...)

	if err := os.MkdirAll(filepath.Dir(dumpPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for records: %v", err)
	}

	file, err := os.Create(dumpPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(all); err != nil {
		return err
	}

	s.records = nil // Clear the batch
	return nil
}

// WriteTable writes one report table to reports/<name>.csv
func (s *fileStore) WriteTable(table reports.Table) error {
	reportsDir := filepath.Join(s.outputDir, s.streamName, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("failed to create reports directory '%s': %v", reportsDir, err)
	}

	csvPath := filepath.Join(reportsDir, table.Name+".csv")
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create report file '%s': %v", csvPath, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
