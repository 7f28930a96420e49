// Package exercise holds the question bank: the ordered, immutable set of
// multiple-choice exercises and coding challenges served by a session.
package exercise

import "slices"

// Bank is an ordered, immutable sequence of exercises and challenges.
// Indices are stable for the lifetime of the bank and are what progress
// snapshots refer to.
type Bank struct {
	records    []Record
	challenges []Challenge
}

// NewBank validates and copies the given content into a Bank.
func NewBank(records []Record, challenges []Challenge) (*Bank, error) {
	if err := validateBank(records, challenges); err != nil {
		return nil, err
	}

	b := &Bank{
		records:    make([]Record, len(records)),
		challenges: slices.Clone(challenges),
	}
	for i, r := range records {
		r.Options = slices.Clone(r.Options)
		b.records[i] = r
	}
	return b, nil
}

// Len returns the number of exercises.
func (b *Bank) Len() int {
	return len(b.records)
}

// ChallengeCount returns the number of coding challenges.
func (b *Bank) ChallengeCount() int {
	return len(b.challenges)
}

// Exercise returns the exercise at index i.
func (b *Bank) Exercise(i int) (Record, error) {
	if i < 0 || i >= len(b.records) {
		return Record{}, ErrExerciseOutOfRange
	}
	r := b.records[i]
	r.Options = slices.Clone(r.Options)
	return r, nil
}

// Exercises returns a copy of all exercises in bank order.
func (b *Bank) Exercises() []Record {
	out := make([]Record, len(b.records))
	for i := range b.records {
		out[i], _ = b.Exercise(i)
	}
	return out
}

// Challenge returns the challenge at index i.
func (b *Bank) Challenge(i int) (Challenge, error) {
	if i < 0 || i >= len(b.challenges) {
		return Challenge{}, ErrChallengeOutOfRange
	}
	return b.challenges[i], nil
}

// Challenges returns a copy of all challenges in bank order.
func (b *Bank) Challenges() []Challenge {
	return slices.Clone(b.challenges)
}

// FilterByDifficulty returns the indices of exercises tagged d, in bank
// order. DifficultyAll returns every index.
func (b *Bank) FilterByDifficulty(d Difficulty) []int {
	var out []int
	for i, r := range b.records {
		if d == DifficultyAll || r.Difficulty == d {
			out = append(out, i)
		}
	}
	return out
}
