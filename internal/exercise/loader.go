package exercise

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedFormat is the major bank file format this build reads.
const SupportedFormat = "v1"

type bankFile struct {
	Format     string          `yaml:"format"`
	Exercises  []exerciseEntry `yaml:"exercises"`
	Challenges []challengeItem `yaml:"challenges"`
}

type exerciseEntry struct {
	Prompt      string   `yaml:"prompt"`
	Snippet     string   `yaml:"snippet"`
	Options     []string `yaml:"options"`
	Correct     *int     `yaml:"correct"`
	Explanation string   `yaml:"explanation"`
	Difficulty  string   `yaml:"difficulty"`
}

type challengeItem struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
	Difficulty     string `yaml:"difficulty"`
}

// Load reads a YAML bank file from path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates YAML bank content.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if !semver.IsValid(f.Format) {
		return nil, fmt.Errorf("bank format %q is not a semantic version", f.Format)
	}
	if major := semver.Major(f.Format); major != SupportedFormat {
		return nil, fmt.Errorf("bank format %s is not supported (want %s.x)", f.Format, SupportedFormat)
	}

	records := make([]Record, 0, len(f.Exercises))
	for i, e := range f.Exercises {
		if e.Correct == nil {
			return nil, fmt.Errorf("exercise %d: missing correct option", i)
		}
		records = append(records, Record{
			Prompt:       e.Prompt,
			Snippet:      e.Snippet,
			Options:      e.Options,
			CorrectIndex: *e.Correct,
			Explanation:  e.Explanation,
			Difficulty:   Difficulty(e.Difficulty),
		})
	}

	challenges := make([]Challenge, 0, len(f.Challenges))
	for _, c := range f.Challenges {
		challenges = append(challenges, Challenge{
			Title:          c.Title,
			Description:    c.Description,
			ExpectedOutput: c.ExpectedOutput,
			Difficulty:     Difficulty(c.Difficulty),
		})
	}

	return NewBank(records, challenges)
}
