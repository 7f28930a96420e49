package session

// Action is a typed user intent delivered by a UI binder.
type Action interface {
	actionName() string
}

// Answer picks option Option for exercise Exercise.
type Answer struct {
	Exercise int
	Option   int
}

// ToggleTopic flips a roadmap topic between complete and incomplete.
type ToggleTopic struct {
	TopicID string
}

// SubmitChallenge submits code for a coding challenge.
type SubmitChallenge struct {
	Challenge int
	Code      string
}

// Reset clears all progress.
type Reset struct{}

// SelectTab records the active navigation tab.
type SelectTab struct {
	Tab string
}

func (Answer) actionName() string          { return "answer" }
func (ToggleTopic) actionName() string     { return "toggle_topic" }
func (SubmitChallenge) actionName() string { return "submit_challenge" }
func (Reset) actionName() string           { return "reset" }
func (SelectTab) actionName() string       { return "select_tab" }

// Tab ids, in display order.
const (
	TabExercises = "exercises"
	TabRoadmap   = "roadmap"
	TabProgress  = "progress"
)

// Tabs lists every navigable tab.
var Tabs = []string{TabExercises, TabRoadmap, TabProgress}

// DefaultTab is active when no known tab was stored.
const DefaultTab = TabExercises

// ValidTab reports whether tab is a known tab id.
func ValidTab(tab string) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}
