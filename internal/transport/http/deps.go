package http

import (
	"context"

	"github.com/mystery-message/internal/application/notify"
	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/infrastructure/dynamo"
	jwtinfra "github.com/mystery-message/internal/infrastructure/jwt"
	s3infra "github.com/mystery-message/internal/infrastructure/s3"
)

// EventPublisher receives message events. Optional.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.MessageEvent) error
}

// Completer produces text suggestions. Optional; a static set is served when nil.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	Sender      *notify.Sender
	JWTProvider *jwtinfra.Provider
	Exports     *s3infra.Store
	Events      EventPublisher
	LLM         Completer
}
