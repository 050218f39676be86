package progress

import (
	"testing"

	"github.com/sandeepkv93/cozy/internal/model"
)

func tasks(done, total int) []model.Task {
	out := make([]model.Task, total)
	for i := range out {
		out[i] = model.Task{ID: string(rune('a' + i)), Name: "t", DurationMinutes: 1, Completed: i < done}
	}
	return out
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	if got.Message() != "You have no tasks today!" {
		t.Fatalf("unexpected empty message: %q", got.Message())
	}
}

func TestSummarizePercent(t *testing.T) {
	got := Summarize(tasks(2, 5))
	want := Summary{Completed: 2, Total: 5, Remaining: 3, Percent: 40}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Message() != "3 remaining" {
		t.Fatalf("unexpected message: %q", got.Message())
	}
	if got.Ratio() != 0.4 {
		t.Fatalf("unexpected ratio: %v", got.Ratio())
	}
}

func TestSummarizeRoundsHalfUp(t *testing.T) {
	if got := Summarize(tasks(1, 8)).Percent; got != 13 {
		t.Fatalf("expected 12.5 to round to 13, got %d", got)
	}
	if got := Summarize(tasks(2, 3)).Percent; got != 67 {
		t.Fatalf("expected 66.7 to round to 67, got %d", got)
	}
}

func TestSummarizeAllDone(t *testing.T) {
	got := Summarize(tasks(3, 3))
	if !got.AllDone() || got.Percent != 100 || got.Message() != "All done!" {
		t.Fatalf("unexpected all-done summary: %+v %q", got, got.Message())
	}
}
