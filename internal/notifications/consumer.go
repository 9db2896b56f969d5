package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"venuebook/pkg/logger"
	"venuebook/pkg/metrics"

	"github.com/IBM/sarama"
)

// EventHandler processes one decoded booking event
type EventHandler func(ctx context.Context, event *BookingEvent) error

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	OffsetOldest      bool
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topics:            []string{topic},
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
		OffsetOldest:      true,
	}
}

func (c *ConsumerConfig) saramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Consumer.Group.Session.Timeout = c.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.HeartbeatInterval
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.AutoCommit.Enable = true
	cfg.Consumer.Offsets.AutoCommit.Interval = time.Second
	if c.OffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	return cfg
}

// BookingEventConsumer runs consumer-group members that feed booking events to a handler.
// Each worker is its own group member, so partitions are spread across workers.
type BookingEventConsumer struct {
	config  *ConsumerConfig
	handler EventHandler
	log     *logger.Logger

	mu     sync.Mutex
	groups []sarama.ConsumerGroup
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBookingEventConsumer(config *ConsumerConfig, handler EventHandler, log *logger.Logger) *BookingEventConsumer {
	return &BookingEventConsumer{
		config:  config,
		handler: handler,
		log:     log.WithComponent("booking-consumer"),
	}
}

func (c *BookingEventConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return errors.New("consumers already started")
	}

	groups := make([]sarama.ConsumerGroup, 0, numWorkers)
	for i := 0; i < numWorkers; i++ {
		group, err := sarama.NewConsumerGroup(c.config.Brokers, c.config.GroupID, c.config.saramaConfig())
		if err != nil {
			for _, g := range groups {
				_ = g.Close()
			}
			return fmt.Errorf("failed to create consumer group: %w", err)
		}
		groups = append(groups, group)
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.groups = groups
	c.cancel = cancel

	for i, group := range groups {
		c.wg.Add(2)
		go c.drainErrors(group)
		go c.runWorker(runCtx, i, group)
	}

	c.log.Info("booking event consumers started", "workers", numWorkers, "topics", c.config.Topics)
	return nil
}

func (c *BookingEventConsumer) runWorker(ctx context.Context, workerID int, group sarama.ConsumerGroup) {
	defer c.wg.Done()
	handler := &consumerGroupHandler{handler: c.handler, workerID: workerID, log: c.log}

	for {
		if err := group.Consume(ctx, c.config.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.log.Error("error consuming booking events", "worker", workerID, "error", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (c *BookingEventConsumer) drainErrors(group sarama.ConsumerGroup) {
	defer c.wg.Done()
	for err := range group.Errors() {
		c.log.Error("consumer group error", "error", err)
	}
}

// Stop cancels every worker and closes the group members
func (c *BookingEventConsumer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return nil
	}
	c.cancel()

	var errs []error
	for _, group := range c.groups {
		if err := group.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.wg.Wait()
	c.cancel = nil
	c.groups = nil

	if len(errs) > 0 {
		return fmt.Errorf("failed to close consumer group: %w", errors.Join(errs...))
	}
	c.log.Info("booking event consumers stopped")
	return nil
}

type consumerGroupHandler struct {
	handler  EventHandler
	workerID int
	log      *logger.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Debug("consumer group session started", "worker", h.workerID)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Debug("consumer group session ended", "worker", h.workerID)
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Error("failed to process booking event",
					"worker", h.workerID,
					"partition", message.Partition,
					"offset", message.Offset,
					"error", err,
				)
			}
			// malformed events are skipped rather than redelivered forever
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := ParseBookingEvent(message.Value)
	if err != nil {
		return err
	}
	metrics.BookingEventsConsumed.WithLabelValues(string(event.Type)).Inc()
	return h.handler(ctx, event)
}

// AuditHandler writes every booking event to the structured log
func AuditHandler(log *logger.Logger) EventHandler {
	audit := log.WithComponent("booking-audit")
	return func(ctx context.Context, event *BookingEvent) error {
		audit.InfoWithContext(ctx, "booking event", map[string]interface{}{
			"event_id":    event.ID.String(),
			"event_type":  string(event.Type),
			"booking_id":  event.BookingID.String(),
			"venue_id":    event.VenueID.String(),
			"user_id":     event.UserID.String(),
			"status":      event.Status,
			"total_cost":  event.TotalCost.StringFixed(2),
			"start_time":  event.StartTime.Format(time.RFC3339),
			"occurred_at": event.OccurredAt.Format(time.RFC3339),
		})
		return nil
	}
}
