package enumerate

import (
	"context"
	"errors"
	"iter"
	"log"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"minion-profit/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultProgressEvery is how many finished tasks separate two progress lines.
const DefaultProgressEvery = 5000

// Simulator runs one task.
type Simulator interface {
	Run(ctx context.Context, t model.Task) (*model.Result, error)
}

// Runner fans tasks out to a fixed pool of workers. Failed tasks are counted and skipped.
type Runner struct {
	Sim           Simulator
	Workers       int
	ProgressEvery int
	// MaxFailures caps how many failures the report keeps verbatim; counts are always complete.
	MaxFailures int
}

// Report summarizes a run.
type Report struct {
	RunID          string         `json:"run_id"`
	Attempted      int            `json:"attempted"`
	Succeeded      int            `json:"succeeded"`
	FailedByReason map[string]int `json:"failed_by_reason"`
	Failures       []Failure      `json:"failures,omitempty"`
	Duration       time.Duration  `json:"duration"`
}

// Failure is one failed task kept for the report.
type Failure struct {
	Task   model.Task `json:"task"`
	Reason string     `json:"reason"`
	Error  string     `json:"error"`
}

// Failed is the number of failed tasks.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.FailedByReason {
		n += c
	}
	return n
}

type job struct {
	index int
	task  model.Task
}

type outcome struct {
	index  int
	result *model.Result
	err    *model.TaskError
}

// Run simulates every task and returns the successful results in enumeration order.
// The error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, tasks iter.Seq[model.Task]) ([]model.Result, Report, error) {
	if r.Sim == nil {
		return nil, Report{}, errors.New("runner has no simulator")
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	every := r.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	report := Report{RunID: uuid.NewString(), FailedByReason: map[string]int{}}
	start := time.Now()
	log.Printf("[Runner] Run %s: starting with %d workers", report.RunID, workers)

	jobs := make(chan job, workers*4)
	outcomes := make(chan outcome, workers*4)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		i := 0
		for t := range tasks {
			select {
			case jobs <- job{index: i, task: t}:
			case <-gctx.Done():
				return gctx.Err()
			}
			i++
		}
		return nil
	})

	workerGroup, wctx := errgroup.WithContext(gctx)
	for w := 0; w < workers; w++ {
		workerGroup.Go(func() error {
			for j := range jobs {
				res, err := r.Sim.Run(wctx, j.task)
				o := outcome{index: j.index, result: res}
				if err != nil {
					o.result = nil
					o.err = &model.TaskError{Task: j.task, Err: err}
				}
				select {
				case outcomes <- o:
				case <-wctx.Done():
					return wctx.Err()
				}
				if n := done.Add(1); n%int64(every) == 0 {
					log.Printf("[Runner] %d combinations simulated", n)
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(outcomes)
		return workerGroup.Wait()
	})

	type indexed struct {
		index  int
		result model.Result
	}
	var collected []indexed
	for o := range outcomes {
		report.Attempted++
		if o.err != nil {
			reason := o.err.Reason()
			report.FailedByReason[reason]++
			if len(report.Failures) < r.MaxFailures {
				report.Failures = append(report.Failures, Failure{Task: o.err.Task, Reason: reason, Error: o.err.Error()})
			}
			continue
		}
		report.Succeeded++
		collected = append(collected, indexed{index: o.index, result: *o.result})
	}
	err := g.Wait()
	report.Duration = time.Since(start)

	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })
	results := make([]model.Result, len(collected))
	for i, c := range collected {
		results[i] = c.result
	}

	log.Printf("[Runner] Run %s: %d attempted, %d succeeded, %d failed %v (took %v)",
		report.RunID, report.Attempted, report.Succeeded, report.Failed(), report.FailedByReason, report.Duration)
	return results, report, err
}
