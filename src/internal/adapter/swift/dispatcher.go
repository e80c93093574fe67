package swift

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
)

var _ domain.PaymentDispatcher = (*KafkaDispatcher)(nil)
var _ domain.PaymentDispatcher = (*LogDispatcher)(nil)

// Instruction is the message handed to the settlement network when an
// employee releases a payment.
type Instruction struct {
	PaymentID        string    `json:"paymentId"`
	CustomerID       string    `json:"customerId"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	BaseAmount       string    `json:"baseAmount"`
	BaseCurrency     string    `json:"baseCurrency"`
	Provider         string    `json:"provider"`
	RecipientAccount string    `json:"recipientAccount"`
	RoutingCode      string    `json:"routingCode"`
	ReleasedAt       time.Time `json:"releasedAt"`
}

func NewInstruction(payment domain.Payment, releasedAt time.Time) Instruction {
	return Instruction{
		PaymentID:        payment.ID,
		CustomerID:       payment.CustomerID,
		Amount:           payment.Amount.String(),
		Currency:         payment.Currency,
		BaseAmount:       payment.BaseAmount.StringFixed(2),
		BaseCurrency:     domain.BaseCurrency,
		Provider:         payment.Provider,
		RecipientAccount: payment.RecipientAccount,
		RoutingCode:      payment.RoutingCode,
		ReleasedAt:       releasedAt.UTC(),
	}
}

func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "intl-payments-portal"
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Version = sarama.V2_1_0_0
	return config
}

type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewKafkaDispatcher(producer sarama.SyncProducer, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// DialKafka connects a synchronous producer to brokers.
func DialKafka(brokers []string, topic string) (*KafkaDispatcher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaDispatcher(producer, topic), nil
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, payment domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(NewInstruction(payment, d.now()))
	if err != nil {
		return fmt.Errorf("marshal swift instruction: %w", err)
	}

	partition, offset, err := d.send(ctx, &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(payment.ID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		logger.Error("swift dispatcher publish failed", err, logger.Fields{
			"paymentId": payment.ID,
			"topic":     d.topic,
		})
		return fmt.Errorf("publish swift instruction: %w", err)
	}

	logger.Info("swift dispatcher publish success", logger.Fields{
		"paymentId": payment.ID,
		"topic":     d.topic,
		"partition": partition,
		"offset":    offset,
	})
	return nil
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

// send bounds SendMessage, which takes no context, by the ctx deadline. A
// message abandoned here may still be delivered by the producer, so
// consumers dedupe on the payment id key.
func (d *KafkaDispatcher) send(ctx context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := d.producer.SendMessage(msg)
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	select {
	case res := <-done:
		return res.partition, res.offset, res.err
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	}
}

func (d *KafkaDispatcher) Close() error {
	return d.producer.Close()
}

// LogDispatcher records the instruction in the log instead of sending it.
// It is used when no brokers are configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, payment domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("swift dispatcher simulated submission", logger.Fields{
		"instruction": NewInstruction(payment, time.Now()),
	})
	return nil
}
