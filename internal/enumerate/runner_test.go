package enumerate

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"minion-profit/internal/model"
)

// fakeSim fails tasks by seconds: 1 is a configuration error, 2 a missing price.
type fakeSim struct{}

func (fakeSim) Run(_ context.Context, t model.Task) (*model.Result, error) {
	switch t.Seconds {
	case 1:
		return nil, fmt.Errorf("%w: bad task", model.ErrConfiguration)
	case 2:
		return nil, fmt.Errorf("lookup: %w", model.ErrPriceUnavailable)
	}
	return &model.Result{Task: t, ProfitNPC: int64(t.Seconds)}, nil
}

func taskSeq(seconds ...int) func(func(model.Task) bool) {
	return func(yield func(model.Task) bool) {
		for _, s := range seconds {
			if !yield(model.Task{Minion: "Sheep", Level: 1, Seconds: s}) {
				return
			}
		}
	}
}

func TestRunnerKeepsEnumerationOrder(t *testing.T) {
	var seconds []int
	for i := 10; i < 500; i++ {
		seconds = append(seconds, i)
	}
	r := &Runner{Sim: fakeSim{}, Workers: 8, ProgressEvery: 100}
	results, report, err := r.Run(context.Background(), taskSeq(seconds...))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(seconds) || report.Succeeded != len(seconds) {
		t.Fatalf("got %d results, report %+v", len(results), report)
	}
	got := make([]int, len(results))
	for i, res := range results {
		got[i] = res.Seconds
	}
	if !slices.Equal(got, seconds) {
		t.Error("results are not in enumeration order")
	}
	if report.RunID == "" {
		t.Error("missing run id")
	}
}

func TestRunnerCountsFailuresByReason(t *testing.T) {
	r := &Runner{Sim: fakeSim{}, Workers: 3, MaxFailures: 2}
	results, report, err := r.Run(context.Background(), taskSeq(1, 10, 2, 1, 20, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
	if report.Attempted != 7 || report.Succeeded != 2 || report.Failed() != 5 {
		t.Errorf("report = %+v", report)
	}
	want := map[string]int{model.ReasonConfiguration: 3, model.ReasonPriceUnavailable: 2}
	for reason, n := range want {
		if report.FailedByReason[reason] != n {
			t.Errorf("FailedByReason[%s] = %d, want %d", reason, report.FailedByReason[reason], n)
		}
	}
	if len(report.Failures) != 2 {
		t.Errorf("kept %d failures, want 2", len(report.Failures))
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	endless := func(yield func(model.Task) bool) {
		for i := 10; ; i++ {
			if !yield(model.Task{Minion: "Sheep", Level: 1, Seconds: i}) {
				return
			}
		}
	}
	r := &Runner{Sim: fakeSim{}, Workers: 2}
	if _, _, err := r.Run(ctx, endless); err == nil {
		t.Error("expected the cancellation error")
	}
}

func TestRunnerRequiresSimulator(t *testing.T) {
	if _, _, err := (&Runner{}).Run(context.Background(), taskSeq(10)); err == nil {
		t.Error("expected an error")
	}
}
