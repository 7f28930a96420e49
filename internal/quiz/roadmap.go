package quiz

import "github.com/abhisek/golearn/internal/progress"

// Topic is one item of the learning roadmap checklist.
type Topic struct {
	ID          string
	Title       string
	Description string
}

// DefaultTopics is the built-in Go roadmap, in study order.
var DefaultTopics = []Topic{
	{ID: "basics", Title: "Go Basics", Description: "Packages, variables, constants and the basic types."},
	{ID: "control-flow", Title: "Control Flow", Description: "if, for, switch and defer."},
	{ID: "functions", Title: "Functions", Description: "Multiple returns, variadic parameters and closures."},
	{ID: "collections", Title: "Arrays, Slices and Maps", Description: "Slice headers, append growth and map iteration."},
	{ID: "structs-methods", Title: "Structs and Methods", Description: "Value and pointer receivers, embedding."},
	{ID: "interfaces", Title: "Interfaces", Description: "Implicit satisfaction, type assertions and switches."},
	{ID: "errors", Title: "Error Handling", Description: "Error values, wrapping with %w, errors.Is and errors.As."},
	{ID: "concurrency", Title: "Concurrency", Description: "Goroutines, channels, select and the sync package."},
	{ID: "generics", Title: "Generics", Description: "Type parameters and constraints."},
	{ID: "testing", Title: "Testing", Description: "Table-driven tests, benchmarks and fuzzing."},
	{ID: "modules", Title: "Modules and Tooling", Description: "go.mod, versioning and the go command."},
	{ID: "web", Title: "Web Services", Description: "net/http handlers, routing and JSON APIs."},
}

// Toggle flips the completion of topicID: a completed topic is removed, any
// other topic is marked complete. Any id is accepted, including ones that
// are not in DefaultTopics.
func Toggle(st progress.State, topicID string) progress.State {
	next := st.Clone()
	if next.Roadmap[topicID] {
		delete(next.Roadmap, topicID)
	} else {
		next.Roadmap[topicID] = true
	}
	return next
}

// FindTopic returns the built-in topic with the given id.
func FindTopic(id string) (Topic, bool) {
	for _, t := range DefaultTopics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
