package email

import (
	"context"
	"fmt"

	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) SendVerificationCode(ctx context.Context, to, code string) error {
	ctx, span := m.ins.Tracer("admin.outbound.email").Start(ctx, "SendVerificationCode")
	defer span.End()

	msg := mail.Message{
		To:      []string{to},
		Subject: "Your verification code",
		TextBody: fmt.Sprintf(
			"Your verification code is %s. It expires shortly; if you did not request it, ignore this email.",
			code,
		),
	}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
