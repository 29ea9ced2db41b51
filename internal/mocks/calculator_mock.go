// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCalculator struct {
	mock.Mock
}

// NewMockCalculator creates a mock whose expectations are asserted when the test ends.
func NewMockCalculator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCalculator {
	m := &MockCalculator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCalculator) Calculate(ctx context.Context, raw model.RawBatchInput) (service.Outcome, error) {
	args := m.Called(ctx, raw)
	out, _ := args.Get(0).(service.Outcome)
	return out, args.Error(1)
}

func (m *MockCalculator) InvalidateCache() {
	m.Called()
}

var _ service.Calculator = (*MockCalculator)(nil)
