package prompt

// MockConfirmer replays canned answers for testing.
//
// Questions are recorded in order so tests can assert which prompts were
// shown. When the canned answers run out, every further question is
// answered negatively, mirroring the fail-safe default.
type MockConfirmer struct {
	Answers   []bool
	Questions []string

	next int
}

// NewMockConfirmer creates a MockConfirmer with the given answers.
func NewMockConfirmer(answers ...bool) *MockConfirmer {
	return &MockConfirmer{Answers: answers}
}

func (m *MockConfirmer) Confirm(question string) (bool, error) {
	m.Questions = append(m.Questions, question)

	if m.next >= len(m.Answers) {
		return false, nil
	}

	answer := m.Answers[m.next]
	m.next++
	return answer, nil
}
