// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockHistoryService struct {
	mock.Mock
}

func NewMockHistoryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHistoryService {
	m := &MockHistoryService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryService) Record(ctx context.Context, record *model.CalculationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryService) Get(ctx context.Context, id string) (*model.CalculationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalculationRecord), args.Error(1)
}

func (m *MockHistoryService) List(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, int64, error) {
	args := m.Called(ctx, opts)
	records, _ := args.Get(0).([]model.CalculationRecord)
	total, _ := args.Get(1).(int64)
	return records, total, args.Error(2)
}

func (m *MockHistoryService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

var _ service.HistoryService = (*MockHistoryService)(nil)
