package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// maxEventLine bounds a single transcript line; a reply carries at most a
// truncated Wikipedia extract, so anything longer is a corrupt line.
const maxEventLine = 1 << 20

// FileRecorder keeps the console transcript as JSON Lines, one Event per line.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

// NewFileRecorder creates the transcript file and its directory when missing.
func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure transcript dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}
	closeQuietly(f)
	return &FileRecorder{path: path}, nil
}

// AppendInteraction writes the event as a single line in one write call, so a
// failed write never leaves half an event behind a good one.
func (r *FileRecorder) AppendInteraction(event Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer closeQuietly(f)
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// LoadDay reads the transcript and keeps the events of day's calendar day.
// Lines that are not valid events are skipped.
func (r *FileRecorder) LoadDay(day time.Time) ([]Event, error) {
	start, end := DayBounds(day)

	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer closeQuietly(f)

	events, skipped, err := decodeEvents(f, func(ev Event) bool { return ev.within(start, end) })
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warnf("skipped %d unreadable transcript lines in %s", skipped, r.path)
	}
	return events, nil
}

func decodeEvents(rd io.Reader, keep func(Event) bool) ([]Event, int, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	var (
		events  []Event
		skipped int
	)
	for sc.Scan() {
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			skipped++
			continue
		}
		if keep(ev) {
			events = append(events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scan transcript: %w", err)
	}
	return events, skipped, nil
}

func closeQuietly(f *os.File) {
	if err := f.Close(); err != nil {
		log.Debugf("close %s: %v", f.Name(), err)
	}
}
