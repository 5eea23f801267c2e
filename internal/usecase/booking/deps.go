package booking

import "context"

// Locker serializa o check-then-insert por profissional. Implementado
// em internal/locking (Redis); os testes injetam um fake.
type Locker interface {
	AcquireBookingLock(ctx context.Context, professionalID uint) (func(), error)
}

// NopLocker para contextos onde a serialização vem de fora (testes).
type NopLocker struct{}

func (NopLocker) AcquireBookingLock(context.Context, uint) (func(), error) {
	return func() {}, nil
}
