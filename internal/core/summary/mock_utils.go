package summary

import (
	"context"
)

// MockLLMClient returns canned responses in call order. When the
// script runs out, the last entry repeats.
type MockLLMClient struct {
	Responses []string
	Errs      []error
	Calls     int
	Prompts   []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	i := m.Calls
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)

	if n := len(m.Errs); n > 0 {
		j := i
		if j >= n {
			j = n - 1
		}
		if err := m.Errs[j]; err != nil {
			return "", err
		}
	}

	if n := len(m.Responses); n > 0 {
		j := i
		if j >= n {
			j = n - 1
		}
		return m.Responses[j], nil
	}
	return "", nil
}
