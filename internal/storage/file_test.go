package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoadDay(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "transcript.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	ev1 := Event{Timestamp: day.Add(9 * time.Hour), Query: "1066", Intent: "year", Source: "local", Response: "Hastings"}
	ev2 := Event{Timestamp: day.Add(11 * time.Hour), Query: "wiki Rome", Intent: "wiki", Source: "wikipedia", Response: "Rome"}
	other := Event{Timestamp: day.Add(25 * time.Hour), Query: "1453", Intent: "year", Source: "local"}
	for _, ev := range []Event{ev1, ev2, other} {
		if err := rec.AppendInteraction(ev); err != nil {
			t.Fatalf("append %q: %v", ev.Query, err)
		}
	}

	events, err := rec.LoadDay(day.Add(15 * time.Hour))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].Query != "1066" || events[1].Intent != "wiki" {
		t.Fatalf("order mismatch: %+v", events)
	}

	next, err := rec.LoadDay(day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("load next day: %v", err)
	}
	if len(next) != 1 || next[0].Query != "1453" {
		t.Fatalf("unexpected next day events: %+v", next)
	}
}

func TestFileRecorder_LoadDayUsesDayLocation(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "transcript.jsonl"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	// 22:00 on the 15th in New York is 03:00 on the 16th in UTC.
	ny := time.FixedZone("EST", -5*60*60)
	at := time.Date(2024, 1, 15, 22, 0, 0, 0, ny)
	if err := rec.AppendInteraction(Event{Timestamp: at, Query: "Napoleon", Intent: "name"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	local, err := rec.LoadDay(time.Date(2024, 1, 15, 8, 0, 0, 0, ny))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(local) != 1 {
		t.Fatalf("want the event on the local day, got %+v", local)
	}
	utc, err := rec.LoadDay(time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(utc) != 0 {
		t.Fatalf("want no events on the UTC day, got %+v", utc)
	}
}

func TestFileRecorder_SkipsMalformedLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "transcript.jsonl")
	content := `{"timestamp":"2024-01-15T09:00:00Z","query":"ok","intent":"name"}` + "\n" +
		"not json\n\n" +
		`{"timestamp":"2024-01-15T10:00:00Z","query":"ok2","intent":"year"}` + "\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	events, err := rec.LoadDay(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 || events[1].Query != "ok2" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestNewFileRecorder_KeepsExistingTranscript(t *testing.T) {
	p := filepath.Join(t.TempDir(), "transcript.jsonl")
	seed := `{"timestamp":"2024-01-15T09:00:00Z","query":"kept"}` + "\n"
	if err := os.WriteFile(p, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewFileRecorder(p); err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != seed {
		t.Fatalf("transcript was modified: %q", data)
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}
}
