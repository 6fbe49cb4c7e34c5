package watch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/papapumpkin/somersault/internal/judge"
	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/telemetry"
)

const finalSheet = `name = "Regional final"
skills = [
  "41 o f", "40 o", "41 < f", "40 <", "42 /",
  "40 /", "44 /", "801 o f", "800 o", "41 / f",
]
`

// event is one call observed by fakeReporter.
type event struct {
	kind string
	path string
	err  error
}

type fakeReporter struct {
	mu     sync.Mutex
	events []event
	notify chan event
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{notify: make(chan event, 32)}
}

func (f *fakeReporter) add(e event) {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
	f.notify <- e
}

func (f *fakeReporter) RoutineScored(path string, _ *routine.Routine, _ routine.Stats) {
	f.add(event{kind: "routine", path: path})
}

func (f *fakeReporter) SheetJudged(path string, _ judge.Summary) {
	f.add(event{kind: "judged", path: path})
}

func (f *fakeReporter) SheetFailed(path string, err error) {
	f.add(event{kind: "failed", path: path, err: err})
}

func (f *fakeReporter) SheetRemoved(path string) {
	f.add(event{kind: "removed", path: path})
}

type fakeRecorder struct {
	routines []string
	scores   []judge.Summary
}

func (f *fakeRecorder) SaveRoutine(_ context.Context, path string, _ *routine.Routine) error {
	f.routines = append(f.routines, path)
	return nil
}

func (f *fakeRecorder) RecordScore(_ context.Context, _ string, s judge.Summary) error {
	f.scores = append(f.scores, s)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func waitFor(t *testing.T, ch <-chan event) event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reporter event")
		return event{}
	}
}

func TestWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "final.toml", finalSheet)

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(strings.Replace(finalSheet, "Regional", "National", 1)), 0o644); err != nil {
		t.Fatalf("update: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.File != path {
			t.Errorf("File = %q, want %q", c.File, path)
		}
		if c.Kind != ChangeModified {
			t.Errorf("Kind = %s, want modified", c.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "final.toml")

	w, err := NewWatcher(dir, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	for range 5 {
		if err := os.WriteFile(path, []byte(finalSheet), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
	select {
	case c := <-w.Changes:
		t.Errorf("burst produced a second change: %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	writeSheet(t, dir, "notes.txt", "hello")

	select {
	case c := <-w.Changes:
		t.Errorf("unexpected change event: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "final.yaml", "name: x\n")

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Kind != ChangeRemoved {
			t.Errorf("Kind = %s, want removed", c.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
}

func TestRunner_Handle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	routinePath := writeSheet(t, dir, "final.toml", finalSheet)
	judgePath := writeSheet(t, dir, "final.judge.toml", "routine = \"final.toml\"\nexecution = [0.1, 0.2]\n")
	badPath := writeSheet(t, dir, "broken.toml", "name = \"broken\"\nskills = [\"40\"]\n")

	rep := newFakeReporter()
	rec := &fakeRecorder{}
	r := &Runner{Reporter: rep, Recorder: rec}
	r.Logger = discardLogger()

	ctx := context.Background()
	r.handle(ctx, Change{Kind: ChangeModified, File: routinePath})
	r.handle(ctx, Change{Kind: ChangeModified, File: judgePath})
	r.handle(ctx, Change{Kind: ChangeModified, File: badPath})
	r.handle(ctx, Change{Kind: ChangeRemoved, File: routinePath})

	want := []event{
		{kind: "routine", path: routinePath},
		{kind: "judged", path: judgePath},
		{kind: "failed", path: badPath},
		{kind: "removed", path: routinePath},
	}
	if len(rep.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(rep.events), len(want), rep.events)
	}
	for i, w := range want {
		got := rep.events[i]
		if got.kind != w.kind || got.path != w.path {
			t.Errorf("event %d = %s %s, want %s %s", i, got.kind, got.path, w.kind, w.path)
		}
	}
	if rep.events[2].err == nil {
		t.Error("failed event should carry the load error")
	}
	if len(rec.routines) != 1 || rec.routines[0] != routinePath {
		t.Errorf("recorded routines = %v, want [%s]", rec.routines, routinePath)
	}
	if len(rec.scores) != 1 || rec.scores[0].Execution != 0.3 {
		t.Errorf("recorded scores = %+v, want one with execution 0.3", rec.scores)
	}
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	existing := writeSheet(t, dir, "final.toml", finalSheet)
	telemetryPath := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := telemetry.NewEmitter(telemetryPath)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	rep := newFakeReporter()
	r := &Runner{Watcher: w, Reporter: rep, Emitter: em, Logger: discardLogger()}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	if e := waitFor(t, rep.notify); e.kind != "routine" || e.path != existing {
		t.Fatalf("initial scan event = %+v, want routine %s", e, existing)
	}

	added := writeSheet(t, dir, "final.judge.yaml", "routine: final.toml\nhd: [0.1]\n")
	if e := waitFor(t, rep.notify); e.kind != "judged" || e.path != added {
		t.Fatalf("change event = %+v, want judged %s", e, added)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(telemetryPath)
	if err != nil {
		t.Fatalf("open telemetry: %v", err)
	}
	defer f.Close()
	var kinds []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var evt telemetry.Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("invalid JSONL line %q: %v", sc.Text(), err)
		}
		kinds = append(kinds, evt.Kind)
	}
	want := []string{
		telemetry.KindWatchStart,
		telemetry.KindSheetScored,
		telemetry.KindSheetScored,
		telemetry.KindWatchStop,
	}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("telemetry kinds = %v, want %v", kinds, want)
	}
}

func TestRunner_RunMissingDir(t *testing.T) {
	t.Parallel()
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	r := &Runner{Watcher: w, Reporter: newFakeReporter(), Logger: discardLogger()}
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
