package inbound

import (
	"context"

	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/danargo/sitegate/internal/webhook/usecase"
)

type ucDispatcher interface {
	Dispatch(ctx context.Context, in usecase.DispatchInput) error
}

type uc interface {
	ucDispatcher

	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	List(ctx context.Context) (*usecase.ListOutput, error)
	Get(ctx context.Context, id int64) (*entity.Webhook, error)
	Update(ctx context.Context, in usecase.UpdateInput) error
	Delete(ctx context.Context, in usecase.DeleteInput) error
	ListDeliveries(ctx context.Context, in usecase.ListDeliveriesInput) (*usecase.ListDeliveriesOutput, error)
	Retry(ctx context.Context, in usecase.RetryInput) (*entity.Delivery, error)
}
