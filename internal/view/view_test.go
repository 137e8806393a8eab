package view

import (
	"testing"
	"time"

	"todo/internal/task"
)

var base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *task.Date {
	return &task.Date{Year: y, Month: m, Day: d}
}

func sample() []task.Task {
	return []task.Task{
		{ID: 1, Text: "a", Priority: task.PriorityLow, CreatedAt: base, DueDate: date(2024, 5, 20)},
		{ID: 2, Text: "b", Priority: task.PriorityHigh, CreatedAt: base.Add(time.Hour), Completed: true},
		{ID: 3, Text: "c", Priority: task.PriorityMedium, CreatedAt: base.Add(2 * time.Hour), DueDate: date(2024, 5, 12)},
		{ID: 4, Text: "d", Priority: task.PriorityHigh, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, Text: "e", Priority: task.PriorityLow, CreatedAt: base.Add(time.Hour), DueDate: date(2024, 5, 12), Completed: true},
	}
}

func ids(items []Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeDefaultSortNewestFirstStable(t *testing.T) {
	got := ids(Compute(sample(), DefaultState(), base))
	// 2 and 5 share a creation time and keep collection order.
	want := []int64{4, 3, 2, 5, 1}
	if !equalIDs(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestComputeStatusFilter(t *testing.T) {
	cases := []struct {
		status StatusFilter
		want   []int64
	}{
		{StatusAll, []int64{4, 3, 2, 5, 1}},
		{StatusActive, []int64{4, 3, 1}},
		{StatusCompleted, []int64{2, 5}},
	}
	for _, tc := range cases {
		st := DefaultState()
		st.Status = tc.status
		if got := ids(Compute(sample(), st, base)); !equalIDs(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestComputePriorityFilter(t *testing.T) {
	st := DefaultState()
	st.Priorities = NewPrioritySet(task.PriorityLow, task.PriorityMedium)
	if got, want := ids(Compute(sample(), st, base)), []int64{3, 5, 1}; !equalIDs(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestComputeDueDateSort(t *testing.T) {
	for _, status := range []StatusFilter{StatusAll, StatusActive, StatusCompleted} {
		st := State{Status: status, Priorities: AllPriorities, Sort: SortDueDate}
		items := Compute(sample(), st, base)
		seenNoDue := false
		for _, it := range items {
			if it.DueDate == nil {
				seenNoDue = true
			} else if seenNoDue {
				t.Errorf("%s: dated task %d after undated task in %v", status, it.ID, ids(items))
			}
		}
	}
	st := State{Status: StatusAll, Priorities: AllPriorities, Sort: SortDueDate}
	// 3 and 5 share a due date: collection order. 4 and 2 have none: collection order.
	if got, want := ids(Compute(sample(), st, base)), []int64{3, 5, 1, 2, 4}; !equalIDs(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestComputePrioritySort(t *testing.T) {
	st := State{Status: StatusAll, Priorities: AllPriorities, Sort: SortPriority}
	items := Compute(sample(), st, base)
	if got, want := ids(items), []int64{2, 4, 3, 1, 5}; !equalIDs(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	seenLow := false
	for _, it := range items {
		if it.Priority == task.PriorityLow {
			seenLow = true
		}
		if it.Priority == task.PriorityHigh && seenLow {
			t.Errorf("low task precedes high task in %v", ids(items))
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	in := sample()
	Compute(in, State{Status: StatusAll, Priorities: AllPriorities, Sort: SortPriority}, base)
	for i, tk := range in {
		if tk.ID != int64(i+1) {
			t.Fatalf("Input reordered: %+v", in)
		}
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 30, 0, 0, time.UTC)
	yesterday := date(2024, 5, 9)
	today := date(2024, 5, 10)

	active := task.Task{ID: 1, Text: "x", Priority: task.PriorityLow, DueDate: yesterday}
	if !IsOverdue(active, now) {
		t.Error("Expected active task due yesterday to be overdue")
	}
	done := active
	done.Completed = true
	if IsOverdue(done, now) {
		t.Error("Completed task must never be overdue")
	}
	dueToday := task.Task{ID: 2, Text: "y", Priority: task.PriorityLow, DueDate: today}
	if IsOverdue(dueToday, now) {
		t.Error("Task due today is not overdue")
	}
	if IsOverdue(task.Task{ID: 3, Text: "z", Priority: task.PriorityLow}, now) {
		t.Error("Task without due date is not overdue")
	}

	items := Compute([]task.Task{active, dueToday}, DefaultState(), now)
	for _, it := range items {
		if it.Overdue != (it.ID == 1) {
			t.Errorf("Item %d overdue = %v", it.ID, it.Overdue)
		}
	}
}

func TestPrioritySetToggle(t *testing.T) {
	s := AllPriorities
	s = s.Toggle(task.PriorityLow)
	if s.Has(task.PriorityLow) || !s.Has(task.PriorityHigh) {
		t.Errorf("Unexpected set after removing low: %s", s)
	}
	s = NewPrioritySet(task.PriorityHigh)
	s = s.Toggle(task.PriorityHigh)
	if s != AllPriorities {
		t.Errorf("Expected revert to full set, got %s", s)
	}
	var zero PrioritySet
	if !zero.Has(task.PriorityMedium) {
		t.Error("Zero set should behave as the full set")
	}
}

func TestParse(t *testing.T) {
	if f, err := ParseStatusFilter("Active"); err != nil || f != StatusActive {
		t.Errorf("ParseStatusFilter = %q, %v", f, err)
	}
	if _, err := ParseStatusFilter("done"); err == nil {
		t.Error("Expected error for unknown filter")
	}
	if m, err := ParseSortMode("due-date"); err != nil || m != SortDueDate {
		t.Errorf("ParseSortMode = %q, %v", m, err)
	}
	if _, err := ParseSortMode("alpha"); err == nil {
		t.Error("Expected error for unknown sort")
	}
}

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name  string
		tasks []task.Task
		want  Stats
	}{
		{"empty", nil, Stats{0, 0, 0}},
		{"sample", sample(), Stats{Total: 5, Completed: 2, Pending: 3}},
		{"all done", []task.Task{{ID: 1, Completed: true}}, Stats{Total: 1, Completed: 1}},
	}
	for _, tc := range cases {
		got := ComputeStats(tc.tasks)
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
		if got.Total != got.Completed+got.Pending {
			t.Errorf("%s: total != completed + pending: %+v", tc.name, got)
		}
	}
}
