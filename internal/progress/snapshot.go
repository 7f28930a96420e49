package progress

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// snapshot is the persisted JSON shape of State.
type snapshot struct {
	CurrentScore       int             `json:"currentScore"`
	ChallengeScore     int             `json:"challengeScore"`
	CompletedExercises []int           `json:"completedExercises"`
	RoadmapProgress    map[string]bool `json:"roadmapProgress"`
}

// Limits bound the indices a snapshot may reference. A zero field leaves
// that dimension unbounded.
type Limits struct {
	Exercises  int
	Challenges int
}

// Marshal serializes s to its snapshot JSON.
func Marshal(s State) ([]byte, error) {
	snap := snapshot{
		CurrentScore:       s.Score,
		ChallengeScore:     s.ChallengeScore,
		CompletedExercises: append([]int{}, s.CompletedList()...),
		RoadmapProgress:    make(map[string]bool, len(s.Roadmap)),
	}
	for id, done := range s.Roadmap {
		if done {
			snap.RoadmapProgress[id] = true
		}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal parses and validates snapshot JSON, then normalizes the result
// against limits.
func Unmarshal(data []byte, limits Limits) (State, error) {
	if err := validateSnapshot(data); err != nil {
		return Default(), err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Default(), fmt.Errorf("decode snapshot: %w", err)
	}
	return normalize(snap, limits), nil
}

// normalize drops entries a reachable state can never contain and restores
// Score == len(Completed).
func normalize(snap snapshot, limits Limits) State {
	s := Default()
	for _, idx := range snap.CompletedExercises {
		if idx >= 0 && (limits.Exercises == 0 || idx < limits.Exercises) {
			s.Completed[idx] = true
		}
	}
	s.Score = len(s.Completed)

	for id, done := range snap.RoadmapProgress {
		if done {
			s.Roadmap[id] = true
		}
	}

	s.ChallengeScore = max(snap.ChallengeScore, 0)
	if limits.Challenges > 0 {
		s.ChallengeScore = min(s.ChallengeScore, limits.Challenges)
	}
	return s
}

func validateSnapshot(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(snapshotSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse snapshot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://progress-snapshot.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}
