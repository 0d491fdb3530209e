// Package messaging publica eventos de movimientos en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/cajas-api/internal/application/ports"
)

var _ ports.EventPublisher = (*KafkaProducer)(nil)

// messageWriter subconjunto de *kafka.Writer usado por el productor.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publica MovementEvent con la clave cliente_id/tipo_caja_id, así los eventos de un par
// caen en la misma partición y conservan su orden.
type KafkaProducer struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaProducer construye el productor sobre los brokers y el tópico dados.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}
	return newKafkaProducer(writer)
}

func newKafkaProducer(w messageWriter) *KafkaProducer {
	return &KafkaProducer{writer: w, timeout: 5 * time.Second}
}

// PublishMovement serializa el evento como JSON y lo escribe en el tópico.
func (p *KafkaProducer) PublishMovement(ctx context.Context, ev ports.MovementEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal movement event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.ClientID + "/" + ev.CrateTypeID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("movimiento." + ev.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write movement event to kafka: %w", err)
	}
	return nil
}

// Close vacía el buffer y cierra el writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
