package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// InventoryService wraps /inventory.
type InventoryService struct {
	r gateway.Requester
}

func (s *InventoryService) List(ctx context.Context) ([]InventoryItem, error) {
	return list[InventoryItem](ctx, s.r, "/inventory")
}

// ByStatus lists items the backend reports in one stock status.
func (s *InventoryService) ByStatus(ctx context.Context, status InventoryStatus) ([]InventoryItem, error) {
	return list[InventoryItem](ctx, s.r, pathf("/inventory/status/%s", status))
}

func (s *InventoryService) Get(ctx context.Context, id ID) (InventoryItem, error) {
	return get[InventoryItem](ctx, s.r, pathf("/inventory/%s", id))
}

func (s *InventoryService) Create(ctx context.Context, item InventoryItem) (InventoryItem, error) {
	return send[InventoryItem](ctx, s.r, gateway.Post, "/inventory", item)
}

func (s *InventoryService) Update(ctx context.Context, id ID, item InventoryItem) (InventoryItem, error) {
	return send[InventoryItem](ctx, s.r, gateway.Put, pathf("/inventory/%s", id), item)
}

func (s *InventoryService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/inventory/%s", id))
}

// CategoriesService wraps /categories.
type CategoriesService struct {
	r gateway.Requester
}

func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	return list[Category](ctx, s.r, "/categories")
}

func (s *CategoriesService) Create(ctx context.Context, c Category) (Category, error) {
	return send[Category](ctx, s.r, gateway.Post, "/categories", c)
}

func (s *CategoriesService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/categories/%s", id))
}

// UnitsService wraps /units.
type UnitsService struct {
	r gateway.Requester
}

func (s *UnitsService) List(ctx context.Context) ([]Unit, error) {
	return list[Unit](ctx, s.r, "/units")
}

func (s *UnitsService) Create(ctx context.Context, u Unit) (Unit, error) {
	return send[Unit](ctx, s.r, gateway.Post, "/units", u)
}
