package mocks

import "github.com/stretchr/testify/mock"

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(pdfPath, thumbPath string) bool {
	args := m.Called(pdfPath, thumbPath)
	return args.Bool(0)
}
