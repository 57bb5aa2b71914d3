package message

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/pkg/id"
)

const fieldIsAcceptingMessages = "is_accepting_messages"

type Service interface {
	SetAcceptance(ctx context.Context, userID string, accept bool) error
	GetAcceptance(ctx context.Context, userID string) (bool, error)
	Send(ctx context.Context, req domain.SendMessageRequest) (*domain.Message, error)
	List(ctx context.Context, userID string) ([]domain.Message, error)
	Delete(ctx context.Context, userID, messageID string) error
	Export(ctx context.Context, userID string) (string, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	AppendMessage(ctx context.Context, userID string, m domain.Message) error
	RemoveMessage(ctx context.Context, userID string, index int, messageID string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, ev domain.MessageEvent) error
}

type exportStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	repo      userStore
	events    eventPublisher
	exports   exportStore
	exportTTL time.Duration
	now       func() time.Time
}

type ServiceDeps struct {
	UserRepo userStore
	// Events is optional; nothing is published when nil.
	Events    eventPublisher
	Exports   exportStore
	ExportTTL time.Duration
	Now       func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:      deps.UserRepo,
		events:    deps.Events,
		exports:   deps.Exports,
		exportTTL: deps.ExportTTL,
		now:       deps.Now,
	}
	if s.exportTTL <= 0 {
		s.exportTTL = 15 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) SetAcceptance(ctx context.Context, userID string, accept bool) error {
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldIsAcceptingMessages: accept})
}

func (s *service) GetAcceptance(ctx context.Context, userID string) (bool, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsAcceptingMessages, nil
}

// Send appends an anonymous message to the recipient's collection.
func (s *service) Send(ctx context.Context, req domain.SendMessageRequest) (*domain.Message, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if !u.IsAcceptingMessages {
		return nil, fmt.Errorf("send to %s: %w", u.Username, domain.ErrNotAcceptingMessages)
	}
	m := domain.Message{
		MessageID: id.New(),
		Content:   req.Content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, u.UserID, m); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	s.publish(ctx, domain.MessageEvent{
		Type:      domain.EventMessageReceived,
		UserID:    u.UserID,
		MessageID: m.MessageID,
		CreatedAt: m.CreatedAt,
	})
	return &m, nil
}

// List returns the owner's messages, newest first.
func (s *service) List(ctx context.Context, userID string) ([]domain.Message, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sortedDesc(u.Messages), nil
}

func (s *service) Delete(ctx context.Context, userID, messageID string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	for i, m := range u.Messages {
		if m.MessageID == messageID {
			return s.repo.RemoveMessage(ctx, userID, i, messageID)
		}
	}
	return fmt.Errorf("message %s not found: %w", messageID, domain.ErrNotFound)
}

type exportDoc struct {
	Username   string           `json:"username"`
	ExportedAt time.Time        `json:"exportedAt"`
	Messages   []domain.Message `json:"messages"`
}

// Export writes the owner's messages to object storage and returns a
// time-limited download URL.
func (s *service) Export(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(exportDoc{
		Username:   u.Username,
		ExportedAt: s.now().UTC(),
		Messages:   sortedDesc(u.Messages),
	})
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	key := fmt.Sprintf("exports/%s/%s.json", userID, id.New())
	if _, err := s.exports.Upload(ctx, key, bytes.NewReader(body), "application/json"); err != nil {
		return "", err
	}
	return s.exports.PresignedURL(ctx, key, s.exportTTL)
}

func (s *service) publish(ctx context.Context, ev domain.MessageEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish message event", "user_id", ev.UserID, "message_id", ev.MessageID, "err", err)
	}
}

func sortedDesc(in []domain.Message) []domain.Message {
	out := make([]domain.Message, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
