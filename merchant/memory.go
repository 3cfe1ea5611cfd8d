package merchant

import (
	"context"
	"sync"
)

// PaymentState tracks what the callback handlers recorded for an order.
type PaymentState struct {
	Paid          bool
	Failed        bool
	Amount        int64
	TransactionID string
	ErrorCode     string
	ErrorMessage  string
}

// MemoryOrderSystem is an in-memory OrderSystem for development and
// tests. Production deployments bring their own backed by the shop
// database.
type MemoryOrderSystem struct {
	mu     sync.Mutex
	orders map[string]Order
	states map[string]PaymentState
}

func NewMemoryOrderSystem() *MemoryOrderSystem {
	return &MemoryOrderSystem{
		orders: map[string]Order{},
		states: map[string]PaymentState{},
	}
}

// Put registers a pending order, typically right after Checkout.Prepare.
func (m *MemoryOrderSystem) Put(order Order) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders[order.ID] = order
}

func (m *MemoryOrderSystem) Order(_ context.Context, orderID string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return Order{}, ErrOrderNotFound
	}

	return order, nil
}

func (m *MemoryOrderSystem) MarkPaid(_ context.Context, orderID string, amount int64, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[orderID]; !ok {
		return ErrOrderNotFound
	}

	m.states[orderID] = PaymentState{
		Paid:          true,
		Amount:        amount,
		TransactionID: transactionID,
	}

	return nil
}

func (m *MemoryOrderSystem) MarkFailed(_ context.Context, orderID string, errorCode, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[orderID]; !ok {
		return ErrOrderNotFound
	}

	m.states[orderID] = PaymentState{
		Failed:       true,
		ErrorCode:    errorCode,
		ErrorMessage: errorMessage,
	}

	return nil
}

// State returns what was recorded for the order so far.
func (m *MemoryOrderSystem) State(orderID string) PaymentState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.states[orderID]
}
