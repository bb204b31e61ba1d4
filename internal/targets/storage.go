package targets

import (
	"sort"

	"aimrange/internal/clock"
	"aimrange/internal/config"
)

// Store holds the live target set for one session. It is owned by the
// session's tick goroutine and is not safe for concurrent use.
type Store struct {
	targets map[int]*Target
	nextID  int
	tuning  config.Tuning
	clock   clock.Clock
}

func NewStore(tun config.Tuning, c clock.Clock) *Store {
	return &Store{
		targets: make(map[int]*Target),
		nextID:  1,
		tuning:  tun,
		clock:   c,
	}
}

func (s *Store) Add(spec Spec) *Target {
	id := s.nextID
	s.nextID++
	target := New(id, spec, s.tuning, s.clock)
	s.targets[id] = target
	return target
}

func (s *Store) Get(id int) *Target {
	return s.targets[id]
}

// Replace removes the target with the given id and places a fresh one.
func (s *Store) Replace(id int, spec Spec) *Target {
	delete(s.targets, id)
	return s.Add(spec)
}

func (s *Store) Remove(id int) {
	delete(s.targets, id)
}

// GetList returns every target ordered by ID.
func (s *Store) GetList() []*Target {
	targetList := make([]*Target, 0, len(s.targets))
	for _, t := range s.targets {
		targetList = append(targetList, t)
	}
	sort.Slice(targetList, func(i, j int) bool { return targetList[i].ID < targetList[j].ID })
	return targetList
}

func (s *Store) Len() int {
	return len(s.targets)
}

// AllDown reports whether every target has toppled. An empty store is not
// considered down.
func (s *Store) AllDown() bool {
	if len(s.targets) == 0 {
		return false
	}
	for _, t := range s.targets {
		if !t.IsDown() {
			return false
		}
	}
	return true
}

func (s *Store) Views() []View {
	list := s.GetList()
	views := make([]View, len(list))
	for i, t := range list {
		views[i] = t.View()
	}
	return views
}

func (s *Store) Clear() {
	s.targets = make(map[int]*Target)
	s.nextID = 1
}
