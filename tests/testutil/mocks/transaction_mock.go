package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock of repository.TransactionManager
// It runs the function directly without a real transaction while
// recording transaction boundaries so tests can assert that mutations
// happen inside one.
type MockTransactionManager struct {
	mock.Mock

	mu      sync.Mutex
	depth   int
	txCalls int
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTransaction executes the function directly without a real transaction
func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.txCalls++
	m.depth++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.depth--
		m.mu.Unlock()
	}()

	return fn(ctx)
}

// TxCalls returns how many times WithTransaction has been entered
func (m *MockTransactionManager) TxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCalls
}

// InTx reports whether a WithTransaction call is currently in progress
func (m *MockTransactionManager) InTx() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth > 0
}
