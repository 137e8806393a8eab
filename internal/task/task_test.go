package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  error
	}{
		{"Buy milk", "Buy milk", nil},
		{"  padded  ", "padded", nil},
		{"", "", ErrEmptyText},
		{"   ", "", ErrEmptyText},
		{"\t\n", "", ErrEmptyText},
	}
	for _, tc := range cases {
		got, err := NormalizeText(tc.in)
		if !errors.Is(err, tc.err) {
			t.Errorf("NormalizeText(%q) error = %v, want %v", tc.in, err, tc.err)
		}
		if got != tc.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for _, v := range []string{"low", "Medium", " HIGH "} {
		p, err := ParsePriority(v)
		if err != nil {
			t.Fatalf("ParsePriority(%q) failed: %v", v, err)
		}
		if !p.Valid() {
			t.Errorf("ParsePriority(%q) = %q, not valid", v, p)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("Expected error for unknown priority")
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Errorf("Unexpected ranks: high=%d medium=%d low=%d", PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestDateBefore(t *testing.T) {
	a := Date{2024, time.March, 5}
	b := Date{2024, time.March, 6}
	c := Date{2025, time.January, 1}
	if !a.Before(b) || !b.Before(c) || !a.Before(c) {
		t.Error("Expected a < b < c")
	}
	if a.Before(a) {
		t.Error("Date must not be before itself")
	}
	if got := (Date{2024, time.February, 28}).AddDays(2); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays crossed leap day wrong: %s", got)
	}
}

func TestTaskJSONLayout(t *testing.T) {
	due := Date{2024, time.June, 1}
	tk := Task{
		ID:        1717200000000,
		Text:      "Buy milk",
		DueDate:   &due,
		Priority:  PriorityMedium,
		CreatedAt: time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, name := range []string{"id", "text", "completed", "dueDate", "priority", "createdAt"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("Expected field %q in %s", name, data)
		}
	}
	if fields["dueDate"] != "2024-06-01" {
		t.Errorf("Expected dueDate 2024-06-01, got %v", fields["dueDate"])
	}
}

func TestTaskJSONFromBrowserRecord(t *testing.T) {
	raw := `{"id":1700000000000,"text":"Old","completed":true,"dueDate":null,"priority":"high","createdAt":"2023-11-14T22:13:20.000Z"}`
	var tk Task
	if err := json.Unmarshal([]byte(raw), &tk); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if tk.DueDate != nil {
		t.Errorf("Expected nil due date, got %v", tk.DueDate)
	}
	if !tk.Completed || tk.Priority != PriorityHigh {
		t.Errorf("Unexpected task: %+v", tk)
	}
	if tk.CreatedAt.IsZero() {
		t.Error("Expected createdAt to parse")
	}
}
