package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/samber/lo"
)

type RegisterInput struct {
	URL    string   `validate:"required,url,max=2048"`
	Events []string `validate:"required,min=1,dive,required,max=100"`
	Secret string   `validate:"required,min=16,max=256"`
}

type RegisterOutput struct {
	ID     int64
	Events []string
}

// Register creates a new active webhook subscription. Event names are
// normalized (trimmed, lowercased, de-duplicated) before storage.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.URL = strings.TrimSpace(in.URL)
	in.Events = normalizeEvents(in.Events)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hook := entity.Webhook{
		ID:        s.uid.Generate(),
		URL:       in.URL,
		Events:    in.Events,
		Secret:    in.Secret,
		Active:    true,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateWebhook(ctx, hook); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("webhook with this URL already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create webhook", "url", in.URL, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterOutput{ID: hook.ID, Events: hook.Events}, nil
}

func normalizeEvents(events []string) []string {
	cleaned := lo.FilterMap(events, func(e string, _ int) (string, bool) {
		e = strings.ToLower(strings.TrimSpace(e))
		return e, e != ""
	})

	return lo.Uniq(cleaned)
}
