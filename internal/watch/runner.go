package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/papapumpkin/somersault/internal/judge"
	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/telemetry"
)

// Reporter receives the outcome of every scored sheet.
type Reporter interface {
	RoutineScored(path string, r *routine.Routine, st routine.Stats)
	SheetJudged(path string, s judge.Summary)
	SheetFailed(path string, err error)
	SheetRemoved(path string)
}

// Recorder persists scored sheets. *store.Store satisfies it.
type Recorder interface {
	SaveRoutine(ctx context.Context, path string, r *routine.Routine) error
	RecordScore(ctx context.Context, sheet string, s judge.Summary) error
}

// Runner scores every sheet in the watcher's directory, then re-scores
// sheets as they change until its context is cancelled.
type Runner struct {
	Watcher  *Watcher
	Reporter Reporter
	Emitter  *telemetry.Emitter // nil disables telemetry
	Recorder Recorder           // nil disables persistence
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled or the watcher stops.
func (r *Runner) Run(ctx context.Context) error {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	dir := r.Watcher.Dir
	if err := r.Watcher.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer r.Watcher.Stop()

	r.emit(telemetry.Event{Kind: telemetry.KindWatchStart, Sheet: dir})
	defer r.emit(telemetry.Event{Kind: telemetry.KindWatchStop, Sheet: dir})
	r.Logger.Info("watching sheets", "dir", dir, "debounce", r.Watcher.Debounce)

	if err := r.scan(ctx, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("watch stopped", "dir", dir)
			return nil
		case c, ok := <-r.Watcher.Changes:
			if !ok {
				return nil
			}
			r.handle(ctx, c)
		}
	}
}

// scan scores the sheets already present, in name order.
func (r *Runner) scan(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && routine.IsSheetFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	for _, f := range files {
		r.handle(ctx, Change{Kind: ChangeModified, File: f})
	}
	return nil
}

func (r *Runner) handle(ctx context.Context, c Change) {
	log := r.Logger.With("sheet", c.File, "change", c.Kind)
	if c.Kind == ChangeRemoved {
		log.Debug("sheet removed")
		r.Reporter.SheetRemoved(c.File)
		return
	}

	if judge.IsSheetFile(c.File) {
		sum, err := judge.Load(c.File)
		if err != nil {
			r.fail(log, c.File, err)
			return
		}
		log.Debug("judge sheet scored", "total", sum.Total)
		r.Reporter.SheetJudged(c.File, sum)
		r.emit(telemetry.Event{Kind: telemetry.KindSheetScored, Sheet: c.File, Data: sum})
		if r.Recorder != nil {
			if err := r.Recorder.RecordScore(ctx, c.File, sum); err != nil {
				log.Warn("recording score failed", "error", err)
			}
		}
		return
	}

	rt, err := routine.Load(c.File)
	if err == nil {
		err = rt.Validate()
	}
	if err != nil {
		r.fail(log, c.File, err)
		return
	}
	st := rt.Stats()
	log.Debug("routine scored", "difficulty", st.TotalDifficulty)
	r.Reporter.RoutineScored(c.File, rt, st)
	r.emit(telemetry.Event{Kind: telemetry.KindSheetScored, Sheet: c.File, Data: st})
	if r.Recorder != nil {
		if err := r.Recorder.SaveRoutine(ctx, c.File, rt); err != nil {
			log.Warn("saving routine failed", "error", err)
		}
	}
}

func (r *Runner) fail(log *slog.Logger, path string, err error) {
	log.Debug("sheet rejected", "error", err)
	r.Reporter.SheetFailed(path, err)
	r.emit(telemetry.Event{
		Kind:  telemetry.KindSheetInvalid,
		Sheet: path,
		Data:  map[string]string{"error": err.Error()},
	})
}

func (r *Runner) emit(evt telemetry.Event) {
	if err := r.Emitter.Emit(evt); err != nil {
		r.Logger.Warn("telemetry emit failed", "error", err)
	}
}
