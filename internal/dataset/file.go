package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Load reads the dataset file at path. It never fails: I/O errors and files
// without the required columns produce an empty dataset and a log entry.
// Malformed rows are skipped.
func Load(path string) []Record {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("Error loading CSV: %v", err)
		return []Record{}
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			log.Debugf("close dataset: %v", err)
		}
	}(f)

	records, err := read(f)
	if err != nil {
		if errors.Is(err, errMissingColumns) {
			log.Warnf("CSV must contain %q, %q, and %q columns.", ColumnEvent, ColumnDate, ColumnSummary)
		} else {
			log.Errorf("Error loading CSV: %v", err)
		}
		return []Record{}
	}
	return records
}

var errMissingColumns = errors.New("missing required columns")

func read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, name := range head {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	ei, okE := idx[ColumnEvent]
	di, okD := idx[ColumnDate]
	si, okS := idx[ColumnSummary]
	if !okE || !okD || !okS {
		return nil, errMissingColumns
	}
	width := max(ei, di, si) + 1

	records := []Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				log.Debugf("skipping malformed row at line %d: %v", perr.Line, perr.Err)
				continue
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) < width || strings.TrimSpace(row[ei]) == "" {
			continue
		}
		records = append(records, Record{Event: row[ei], Date: row[di], Summary: row[si]})
	}
	return records, nil
}

// Store holds the session's dataset in memory and appends new records to the
// backing file. The mutex covers the dedup check and the write together.
type Store struct {
	path    string
	mu      sync.Mutex
	records []Record
}

func NewStore(path string, records []Record) *Store {
	return &Store{path: path, records: append([]Record(nil), records...)}
}

// Open loads the dataset file and wraps it in a Store.
func Open(path string) *Store {
	return NewStore(path, Load(path))
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the dataset in file order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// hasEvent reports whether a record with the given event name exists, ignoring case.
func (s *Store) hasEvent(event string) bool {
	for _, r := range s.records {
		if strings.EqualFold(r.Event, event) {
			return true
		}
	}
	return false
}

// Append adds rec unless a record with the same event name already exists.
// The row is written to the file first; memory only changes when the write
// succeeded, so both stay in step across restarts.
func (s *Store) Append(rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasEvent(rec.Event) {
		return false, nil
	}
	if err := s.appendRow(rec); err != nil {
		return false, err
	}
	s.records = append(s.records, rec)
	log.Info("New historical data saved.")
	return true, nil
}

func (s *Store) appendRow(rec Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure dataset dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat dataset: %w", err)
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(header()); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(rec.row()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}
	return nil
}
