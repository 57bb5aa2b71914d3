package suggestion

import (
	"context"
	"fmt"
	"strings"
)

// Separator splits the questions inside a single completion.
const Separator = "||"

const prompt = "Create a list of three open-ended and engaging questions formatted as a single string. " +
	"Each question should be separated by '||'. These questions are for an anonymous social messaging platform " +
	"and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on " +
	"universal themes that encourage friendly interaction. For example: " +
	"'What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||" +
	"What's a simple thing that makes you happy?'. Reply with the questions only."

// Fallback is served when no model is configured.
const Fallback = "What's your favorite cuisine?||Have you traveled to any exotic destinations?||What's your go-to hobby?"

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Service interface {
	// Suggest returns the raw "||"-joined text and its split questions.
	Suggest(ctx context.Context) (string, []string, error)
}

type service struct {
	llm completer
}

// NewService builds the suggestion service. A nil completer serves Fallback.
func NewService(llm completer) Service {
	return &service{llm: llm}
}

func (s *service) Suggest(ctx context.Context) (string, []string, error) {
	if s.llm == nil {
		return Fallback, Split(Fallback), nil
	}
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("suggest messages: %w", err)
	}
	raw = strings.Trim(raw, "'\" \n")
	return raw, Split(raw), nil
}

// Split breaks raw on Separator, dropping blank entries.
func Split(raw string) []string {
	var out []string
	for _, q := range strings.Split(raw, Separator) {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
