package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/StudioBelezaApp/salon-scheduler/internal/logging"
)

// Notificação é fire-and-forget: falha de envio é logada e engolida,
// nunca desfaz um agendamento já persistido.

type Event struct {
	Type      string
	SalonID   uint
	BookingID *uint
	ClientID  *uint
	Payload   map[string]any
}

// Sender é o colaborador externo de entrega (push/e-mail). O transporte
// em si está fora deste serviço; o default só registra o evento.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, ev Event) error {
	logging.L().Info("notification",
		zap.String("type", ev.Type),
		zap.Uint("salon_id", ev.SalonID),
		zap.Any("payload", ev.Payload),
	)
	return nil
}

type Dispatcher struct {
	sender Sender
	queue  chan Event
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sender.Send(context.Background(), ev); err != nil {
			logging.L().Warn("notification send failed",
				zap.String("type", ev.Type), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar API)
		logging.L().Warn("notification queue full, dropping event",
			zap.String("type", ev.Type))
	}
}
