package exercise

import (
	"fmt"
	"strings"
)

// validateBank performs all structural checks on a bank's content.
// Returns a combined error describing all problems found, or nil if valid.
func validateBank(records []Record, challenges []Challenge) error {
	var errs []string

	if len(records) == 0 {
		errs = append(errs, "bank has no exercises")
	}

	for i, r := range records {
		if strings.TrimSpace(r.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("exercise %d: empty prompt", i))
		}
		if len(r.Options) < MinOptions || len(r.Options) > MaxOptions {
			errs = append(errs, fmt.Sprintf("exercise %d: has %d options, want %d-%d",
				i, len(r.Options), MinOptions, MaxOptions))
		}
		for j, opt := range r.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("exercise %d: option %d is empty", i, j))
			}
		}
		if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options) {
			errs = append(errs, fmt.Sprintf("exercise %d: correct index %d out of range", i, r.CorrectIndex))
		}
		if !r.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("exercise %d: unknown difficulty %q", i, r.Difficulty))
		}
	}

	for i, c := range challenges {
		if strings.TrimSpace(c.Title) == "" {
			errs = append(errs, fmt.Sprintf("challenge %d: empty title", i))
		}
		if !c.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("challenge %d: unknown difficulty %q", i, c.Difficulty))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid bank:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
