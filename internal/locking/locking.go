package locking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/logging"
)

// Lock advisory por profissional, segurado durante o check-then-insert
// de agendamento. Duas requisições concorrentes para o mesmo
// profissional serializam aqui; se o lock expirar no meio, a exclusion
// constraint do banco ainda pega a corrida perdida.

const (
	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
	maxRetries    = 40
)

// Script compare-and-delete: só libera o lock se ainda for nosso.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// AcquireBookingLock bloqueia a agenda do profissional e devolve a
// função de release. Espera com retry curto; estourando o limite,
// devolve time_slot_unavailable (alguém está agendando agora).
func (l *Locker) AcquireBookingLock(
	ctx context.Context,
	professionalID uint,
) (func(), error) {

	key := fmt.Sprintf("booking_lock:professional:%d", professionalID)
	token := uuid.NewString()

	for i := 0; i < maxRetries; i++ {
		ok, err := l.rdb.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				if _, err := releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Result(); err != nil {
					logging.L().Warn("failed to release booking lock",
						zap.String("key", key), zap.Error(err))
				}
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return nil, httperr.ErrBusiness("time_slot_unavailable")
}
