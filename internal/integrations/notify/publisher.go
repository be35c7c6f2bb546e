package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/planbay/scheduling-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher отправляет события бронирований; ошибки отправки никогда
// не влияют на результат операции
type Dispatcher interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	BookingCancelled(ctx context.Context, b *domain.Booking)
	BookingStatusChanged(ctx context.Context, b *domain.Booking, oldStatus domain.BookingStatus)
}

// Publisher публикует события бронирований в topic exchange RabbitMQ
// Отправка fire-and-forget: ошибка публикации логируется и не
// откатывает бронирование
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// BookingCreated публикует событие создания бронирования
func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) {
	p.publish(ctx, RKBookingCreated, bookingEvent(b, ""))
}

// BookingCancelled публикует событие отмены бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, b *domain.Booking) {
	p.publish(ctx, RKBookingCancelled, bookingEvent(b, ""))
}

// BookingStatusChanged публикует событие смены статуса
func (p *Publisher) BookingStatusChanged(ctx context.Context, b *domain.Booking, oldStatus domain.BookingStatus) {
	p.publish(ctx, RKBookingStatusChanged, bookingEvent(b, oldStatus))
}

func (p *Publisher) publish(ctx context.Context, key string, event BookingEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("notify: marshal event %s for booking id=%d: %v", key, event.BookingID, err)
		return
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		// Уведомления best-effort: бронирование уже зафиксировано
		p.log.Error("notify: publish %s for booking id=%d: %v", key, event.BookingID, err)
		return
	}

	p.log.Info("notify: published %s for booking id=%d", key, event.BookingID)
}

func bookingEvent(b *domain.Booking, oldStatus domain.BookingStatus) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		Reference:  b.Reference.String(),
		OrgID:      b.OrgID,
		ResourceID: b.ResourceID,
		LocationID: b.LocationID,
		Customer:   b.CustomerName,
		Date:       b.BookingDate.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		OldStatus:  string(oldStatus),
	}
}

// NoopDispatcher заглушка для окружений без брокера (уведомления выключены)
type NoopDispatcher struct{}

// NewNoopDispatcher создает диспетчер, который ничего не отправляет
func NewNoopDispatcher() *NoopDispatcher {
	return &NoopDispatcher{}
}

func (NoopDispatcher) BookingCreated(context.Context, *domain.Booking)   {}
func (NoopDispatcher) BookingCancelled(context.Context, *domain.Booking) {}
func (NoopDispatcher) BookingStatusChanged(context.Context, *domain.Booking, domain.BookingStatus) {
}
