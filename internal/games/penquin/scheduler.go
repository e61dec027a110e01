package penquin

// TaskID identifies a scheduled task so it can be cancelled.
type TaskID int

type task struct {
	id        TaskID
	elapsed   int
	dur       int
	step      func(t float64)
	done      func()
	cancelled bool
}

// Scheduler runs tick-counted tweens and one-shot delays.
// Every animation and delayed action of a level goes through it, so a level
// restart can drop all pending work with a single Reset.
type Scheduler struct {
	tasks []*task
	byID  map[TaskID]*task
	next  TaskID
	gen   int // bumped by Reset; Advance stops when it changes under it
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[TaskID]*task)}
}

// After runs fn once, ticks Advance calls from now.
func (s *Scheduler) After(ticks int, fn func()) TaskID {
	return s.Tween(ticks, nil, fn)
}

// Tween calls step with progress t in (0, 1] on each of the next ticks
// Advance calls, then calls done. Either callback may be nil.
func (s *Scheduler) Tween(ticks int, step func(t float64), done func()) TaskID {
	if ticks < 1 {
		ticks = 1
	}
	s.next++
	t := &task{id: s.next, dur: ticks, step: step, done: done}
	s.tasks = append(s.tasks, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel drops a pending task. Unknown or finished ids are ignored.
func (s *Scheduler) Cancel(id TaskID) {
	t, ok := s.byID[id]
	if !ok {
		return
	}
	t.cancelled = true
	delete(s.byID, id)
}

// Advance moves every pending task forward one tick.
// Tasks scheduled from inside a callback start on the next Advance.
func (s *Scheduler) Advance() {
	gen := s.gen
	current := s.tasks
	s.tasks = nil

	var survivors []*task
	for _, t := range current {
		if t.cancelled {
			continue
		}
		t.elapsed++
		if t.step != nil {
			t.step(float64(t.elapsed) / float64(t.dur))
		}
		if s.gen != gen {
			return
		}
		if t.cancelled {
			continue
		}
		if t.elapsed < t.dur {
			survivors = append(survivors, t)
			continue
		}
		delete(s.byID, t.id)
		if t.done != nil {
			t.done()
		}
		if s.gen != gen {
			return
		}
	}

	s.tasks = append(survivors, s.tasks...)
}

// Reset drops every pending task.
func (s *Scheduler) Reset() {
	s.tasks = nil
	s.byID = make(map[TaskID]*task)
	s.gen++
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.byID)
}
