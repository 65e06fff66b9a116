package services

import (
	"context"
	"ticket-registry/internal/model"

	"github.com/stretchr/testify/mock"
)

type IssuanceServiceMock struct {
	mock.Mock
}

func NewIssuanceServiceMock() *IssuanceServiceMock {
	return &IssuanceServiceMock{}
}

func (m *IssuanceServiceMock) Issue(ctx context.Context, caller string, info string) (uint64, error) {
	args := m.Called(ctx, caller, info)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *IssuanceServiceMock) BatchIssue(ctx context.Context, caller string, infos []string) (*model.BatchIssueResult, error) {
	args := m.Called(ctx, caller, infos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchIssueResult), args.Error(1)
}

type TransferServiceMock struct {
	mock.Mock
}

func NewTransferServiceMock() *TransferServiceMock {
	return &TransferServiceMock{}
}

func (m *TransferServiceMock) Transfer(ctx context.Context, caller string, id uint64, from string, to string) error {
	args := m.Called(ctx, caller, id, from, to)
	return args.Error(0)
}

type CancellationServiceMock struct {
	mock.Mock
}

func NewCancellationServiceMock() *CancellationServiceMock {
	return &CancellationServiceMock{}
}

func (m *CancellationServiceMock) Cancel(ctx context.Context, caller string, id uint64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *CancellationServiceMock) Restore(ctx context.Context, caller string, id uint64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type QueryServiceMock struct {
	mock.Mock
}

func NewQueryServiceMock() *QueryServiceMock {
	return &QueryServiceMock{}
}

func (m *QueryServiceMock) GetTicket(ctx context.Context, id uint64) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *QueryServiceMock) GetOwner(ctx context.Context, id uint64) (*string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *QueryServiceMock) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *QueryServiceMock) IsCancelled(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *QueryServiceMock) IsTransferable(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *QueryServiceMock) TotalIssued(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *QueryServiceMock) GetBatchMetadata(ctx context.Context, id uint64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *QueryServiceMock) AdminID() string {
	args := m.Called()
	return args.String(0)
}

func (m *QueryServiceMock) IsAdmin(identity string) bool {
	args := m.Called(identity)
	return args.Bool(0)
}

type PriceServiceMock struct {
	mock.Mock
}

func NewPriceServiceMock() *PriceServiceMock {
	return &PriceServiceMock{}
}

func (m *PriceServiceMock) ValidatePrice(amount float64) error {
	args := m.Called(amount)
	return args.Error(0)
}
