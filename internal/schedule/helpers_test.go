package schedule

import (
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// date parses a YYYY-MM-DD literal for test fixtures.
func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dateP(s string) *time.Time {
	t := date(s)
	return &t
}

func strP(s string) *string {
	return &s
}

type taskOpt func(*domain.Task)

func withParent(id string) taskOpt {
	return func(t *domain.Task) { t.ParentID = &id }
}

func withCost(c float64) taskOpt {
	return func(t *domain.Task) { t.Cost = c }
}

func withProgress(p int) taskOpt {
	return func(t *domain.Task) { t.Progress = p }
}

func withOrder(o float64) taskOpt {
	return func(t *domain.Task) { t.Order = o }
}

func withCategory(path ...string) taskOpt {
	return func(t *domain.Task) {
		if len(path) > 0 {
			t.Category = path[0]
		}
		if len(path) > 1 {
			t.Subcategory = path[1]
		}
		if len(path) > 2 {
			t.Subsubcategory = path[2]
		}
	}
}

func withPredecessors(ids ...string) taskOpt {
	return func(t *domain.Task) { t.Predecessors = ids }
}

func withActual(start, end string) taskOpt {
	return func(t *domain.Task) {
		t.ActualStart = dateP(start)
		if end != "" {
			t.ActualEnd = dateP(end)
		}
	}
}

func mkTask(id, start, end string, opts ...taskOpt) *domain.Task {
	t := &domain.Task{
		ID:        id,
		ProjectID: "p-1",
		Type:      domain.TypeTask,
		Name:      id,
		PlanStart: date(start),
		PlanEnd:   date(end),
		Status:    domain.StatusNotStarted,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
