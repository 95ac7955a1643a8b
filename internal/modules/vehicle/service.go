// README: Vehicle catalog service.
package vehicle

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, category, city string) ([]Vehicle, error) {
	return s.store.List(ctx, category, city)
}
