package view

import "todo/internal/task"

type Stats struct {
	Total     int
	Completed int
	Pending   int
}

func ComputeStats(tasks []task.Task) Stats {
	var s Stats
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Total = len(tasks)
	s.Pending = s.Total - s.Completed
	return s
}
