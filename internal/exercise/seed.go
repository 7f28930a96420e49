package exercise

import "sync"

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the built-in Go fundamentals bank.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := NewBank(seedExercises(), seedChallenges())
		if err != nil {
			panic("exercise: built-in bank is invalid: " + err.Error())
		}
		defaultBank = b
	})
	return defaultBank
}

func seedExercises() []Record {
	return []Record{
		{
			Prompt: "Which of the following is a valid way to declare a variable in Go?",
			Snippet: `// A
var x int = 10
// B
y := 20
// C
var z = 30`,
			Options:      []string{"Option A only", "Option B only", "Option C only", "All of the above"},
			CorrectIndex: 3,
			Explanation:  "All three ways are valid in Go: var with explicit type, short declaration :=, and var with type inference.",
			Difficulty:   DifficultyBeginner,
		},
		{
			Prompt: "What is the output of this code?",
			Snippet: `func answer() (int, string) {
    return 42, "answer"
}

n, s := answer()
fmt.Printf("%d: %s", n, s)`,
			Options:      []string{"42: answer", "answer: 42", "Compilation error", "42 answer"},
			CorrectIndex: 0,
			Explanation:  "The function returns 42 as the first value and 'answer' as the second. Printf formats them as '42: answer'.",
			Difficulty:   DifficultyBeginner,
		},
		{
			Prompt: "What will be the length of the slice after these operations?",
			Snippet: `slice := []int{1, 2, 3}
slice = append(slice, 4, 5)
slice = slice[1:4]`,
			Options:      []string{"2", "3", "4", "5"},
			CorrectIndex: 1,
			Explanation:  "slice starts with [1,2,3], becomes [1,2,3,4,5] after append, then [2,3,4] after slice[1:4], so length is 3.",
			Difficulty:   DifficultyBeginner,
		},
		{
			Prompt: "Which statement about Go interfaces is correct?",
			Snippet: `type Writer interface {
    Write(p []byte) (int, error)
}

type MyWriter struct{}

func (MyWriter) Write(p []byte) (int, error) { return len(p), nil }`,
			Options: []string{
				"MyWriter must explicitly declare it implements Writer",
				"MyWriter automatically implements Writer",
				"MyWriter cannot implement Writer without inheritance",
				"This code will not compile",
			},
			CorrectIndex: 1,
			Explanation:  "Go uses implicit interface satisfaction. Any type that implements all methods of an interface automatically satisfies that interface.",
			Difficulty:   DifficultyIntermediate,
		},
		{
			Prompt: "What happens when this code runs?",
			Snippet: `ch := make(chan int, 2)
ch <- 1
ch <- 2
ch <- 3
fmt.Println(<-ch)`,
			Options:      []string{"Prints 1 and exits", "Prints 1, 2, 3", "Deadlock error", "Compilation error"},
			CorrectIndex: 2,
			Explanation:  "The channel has buffer size 2, so the first two sends succeed, but the third send blocks because the buffer is full, causing a deadlock.",
			Difficulty:   DifficultyIntermediate,
		},
		{
			Prompt: "What is the best practice for this function?",
			Snippet: `func readConfig(path string) ([]byte, error) {
    file, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    return io.ReadAll(file)
}`,
			Options: []string{
				"Add defer file.Close()",
				"Use panic instead of returning error",
				"Ignore the error",
				"The code is perfect as-is",
			},
			CorrectIndex: 0,
			Explanation:  "Always close opened files. defer file.Close() ensures the file is closed even if an error occurs later.",
			Difficulty:   DifficultyIntermediate,
		},
		{
			Prompt: "What is the purpose of context.Context in Go?",
			Options: []string{
				"Only for HTTP requests",
				"Cancellation, deadlines, and request-scoped values",
				"Only for database connections",
				"Only for logging",
			},
			CorrectIndex: 1,
			Explanation:  "Context provides cancellation signals, deadlines, and request-scoped values across API boundaries and goroutines.",
			Difficulty:   DifficultyAdvanced,
		},
		{
			Prompt: "Which statement about Go's memory management is correct?",
			Options: []string{
				"Go has manual memory management like C",
				"Go uses reference counting for garbage collection",
				"Go uses a concurrent, tri-color mark-and-sweep GC",
				"Go never frees memory automatically",
			},
			CorrectIndex: 2,
			Explanation:  "Go uses a concurrent, tri-color mark-and-sweep garbage collector that runs concurrently with the program.",
			Difficulty:   DifficultyAdvanced,
		},
	}
}

func seedChallenges() []Challenge {
	return []Challenge{
		{
			Title:          "FizzBuzz",
			Description:    "Print the numbers 1 to 15. For multiples of 3 print Fizz, for multiples of 5 print Buzz, for multiples of both print FizzBuzz.",
			ExpectedOutput: "1\n2\nFizz\n4\nBuzz\nFizz\n7\n8\nFizz\nBuzz\n11\nFizz\n13\n14\nFizzBuzz",
			Difficulty:     DifficultyBeginner,
		},
		{
			Title:          "Word Frequency",
			Description:    "Write a function that takes a sentence and returns a map from each lowercase word to the number of times it appears.",
			ExpectedOutput: `map[go:2 is:1 fun:1]  // for "Go is fun go"`,
			Difficulty:     DifficultyIntermediate,
		},
		{
			Title:          "Concurrent Sum",
			Description:    "Split a slice of ints into 4 parts, sum each part in its own goroutine, and combine the partial sums through a channel.",
			ExpectedOutput: "5050  // for the numbers 1..100",
			Difficulty:     DifficultyAdvanced,
		},
	}
}
