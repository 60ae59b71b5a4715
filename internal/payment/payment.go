package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Processor charges the seeker before a booking is confirmed. Amount is in
// whole rupees; the returned receipt id is stored on the booking.
type Processor interface {
	ProcessPayment(ctx context.Context, amount int) (string, error)
}

// Mock simulates a successful charge with a fixed delay, mirroring the
// test-mode checkout flow. It never fails.
type Mock struct {
	Delay time.Duration
}

func NewMock() *Mock {
	return &Mock{Delay: 2 * time.Second}
}

func (m *Mock) ProcessPayment(ctx context.Context, amount int) (string, error) {
	const op = "payment.Mock.ProcessPayment"

	select {
	case <-time.After(m.Delay):
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	}

	return fmt.Sprintf("mock_pi_%s", uuid.NewString()), nil
}
