// Package progress holds the learner's progress state and persists it as a
// JSON snapshot in a key-value backend.
package progress

import (
	"maps"
	"slices"
)

// State is the learner's progress for one session.
//
// Score always equals len(Completed). Only the quiz evaluator changes the
// pair, and it changes both together.
type State struct {
	Score          int
	ChallengeScore int
	Completed      map[int]bool
	Roadmap        map[string]bool
}

// Default returns the zero-progress state.
func Default() State {
	return State{
		Completed: make(map[int]bool),
		Roadmap:   make(map[string]bool),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{
		Score:          s.Score,
		ChallengeScore: s.ChallengeScore,
		Completed:      make(map[int]bool, len(s.Completed)),
		Roadmap:        make(map[string]bool, len(s.Roadmap)),
	}
	maps.Copy(c.Completed, s.Completed)
	maps.Copy(c.Roadmap, s.Roadmap)
	return c
}

// IsCompleted reports whether the exercise at index has been answered correctly.
func (s State) IsCompleted(index int) bool {
	return s.Completed[index]
}

// IsTopicDone reports whether the roadmap topic is marked complete.
func (s State) IsTopicDone(topicID string) bool {
	return s.Roadmap[topicID]
}

// CompletedList returns the completed exercise indices in ascending order.
func (s State) CompletedList() []int {
	return slices.Sorted(maps.Keys(s.Completed))
}

// RoadmapList returns the completed roadmap topic ids in ascending order.
func (s State) RoadmapList() []string {
	return slices.Sorted(maps.Keys(s.Roadmap))
}

// Equal reports whether s and o describe the same progress. A nil map and an
// empty map are equal.
func (s State) Equal(o State) bool {
	return s.Score == o.Score &&
		s.ChallengeScore == o.ChallengeScore &&
		maps.Equal(s.Completed, o.Completed) &&
		maps.Equal(s.Roadmap, o.Roadmap)
}
