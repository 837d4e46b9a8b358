package npm

import (
	"context"
)

// MockInstaller records install invocations for testing
type MockInstaller struct {
	// Calls holds the directories Install was invoked with, in order
	Calls []string

	// Err is returned from every Install call when set
	Err error
}

// NewMockInstaller creates a new MockInstaller
func NewMockInstaller() *MockInstaller {
	return &MockInstaller{}
}

func (m *MockInstaller) Install(dir string) error {
	m.Calls = append(m.Calls, dir)
	return m.Err
}

func (m *MockInstaller) WithContext(ctx context.Context) Installer {
	return m
}
