package messages

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/realtime"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=messages_test

type messagesRepo interface {
	Conversation(ctx context.Context, gymID, memberID int64) ([]Message, error)
	Create(ctx context.Context, msg Message) (*Message, error)
	MarkRead(ctx context.Context, gymID, memberID int64, readerType string, at time.Time) (int64, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, topic string, event realtime.Event) error
}

type Service struct {
	repo      messagesRepo
	publisher eventPublisher
	metrics   *metrics.Manager
	loc       *time.Location

	NowFunc func() time.Time
}

func NewService(repo messagesRepo, publisher eventPublisher, loc *time.Location, metricsManager *metrics.Manager) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metricsManager,
		loc:       loc,
		NowFunc:   time.Now,
	}
}

func (s *Service) Conversation(ctx context.Context, gymID, memberID int64) ([]Message, error) {
	return s.repo.Conversation(ctx, gymID, memberID)
}

// GroupedConversation returns the conversation split into Today / Yesterday / dated groups.
func (s *Service) GroupedConversation(ctx context.Context, gymID, memberID int64) ([]DateGroup, error) {
	messages, err := s.repo.Conversation(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}
	return GroupByDate(messages, s.NowFunc(), s.loc), nil
}

// Send stores the message and publishes it on the member's realtime topic.
func (s *Service) Send(ctx context.Context, draft Message) (*Message, error) {
	content, err := SanitizeContent(draft.Content)
	if err != nil {
		return nil, err
	}
	draft.Content = content

	msg, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if s.metrics != nil {
		s.metrics.CounterMessages.WithLabelValues(msg.SenderType).Inc()
	}

	event, err := realtime.NewInsertEvent(Table, msg)
	if err == nil {
		err = s.publisher.Publish(ctx, realtime.MessagesTopic(msg.MemberID()), event)
	}
	if err != nil {
		log.Errorf("publish message %d: %s", msg.ID, err)
	}

	return msg, nil
}

func (s *Service) MarkRead(ctx context.Context, gymID, memberID int64, readerType string) (int64, error) {
	return s.repo.MarkRead(ctx, gymID, memberID, readerType, s.NowFunc())
}
