package oscmd

import (
	"strings"
	"sync"
)

// FakeExecutor records invocations and serves canned results. It is
// shared by tests across packages that inject an Executor.
type FakeExecutor struct {
	mu sync.Mutex

	// Outputs maps "name arg1 arg2..." to the stdout Output returns.
	Outputs map[string]string
	// Errs maps the same key to a forced error for Run/Output/Spawn.
	Errs map[string]error

	// Calls is every invocation in order, one "name arg1..." string each.
	Calls []string
}

// NewFakeExecutor returns an empty fake.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		Outputs: make(map[string]string),
		Errs:    make(map[string]error),
	}
}

func (f *FakeExecutor) record(name string, arg ...string) string {
	key := strings.Join(append([]string{name}, arg...), " ")
	f.mu.Lock()
	f.Calls = append(f.Calls, key)
	f.mu.Unlock()
	return key
}

// Run records the call and returns the configured error, if any.
func (f *FakeExecutor) Run(name string, arg ...string) error {
	return f.Errs[f.record(name, arg...)]
}

// Output records the call and returns the configured output or error.
func (f *FakeExecutor) Output(name string, arg ...string) (string, error) {
	key := f.record(name, arg...)
	if err := f.Errs[key]; err != nil {
		return "", err
	}
	return f.Outputs[key], nil
}

// Spawn behaves like Run.
func (f *FakeExecutor) Spawn(name string, arg ...string) error {
	return f.Errs[f.record(name, arg...)]
}

// CallCount returns how many recorded calls start with prefix.
func (f *FakeExecutor) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
