package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// PaymentsService wraps /payments.
type PaymentsService struct {
	r gateway.Requester
}

func (s *PaymentsService) List(ctx context.Context) ([]Payment, error) {
	return list[Payment](ctx, s.r, "/payments")
}

func (s *PaymentsService) ByAction(ctx context.Context, actionID ID) ([]Payment, error) {
	return list[Payment](ctx, s.r, pathf("/payments/action/%s", actionID))
}

func (s *PaymentsService) Create(ctx context.Context, p Payment) (Payment, error) {
	return send[Payment](ctx, s.r, gateway.Post, "/payments", p)
}

func (s *PaymentsService) Update(ctx context.Context, id ID, p Payment) (Payment, error) {
	return send[Payment](ctx, s.r, gateway.Put, pathf("/payments/%s", id), p)
}

func (s *PaymentsService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/payments/%s", id))
}
