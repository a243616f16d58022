package assets

import (
	"context"
	"net/url"

	"parttrack/modules/platform/transport"
)

// Service is the backend boundary of the asset screens
type Service interface {
	GetAsset(ctx context.Context, serial string) (Asset, error)
	GetTransactions(ctx context.Context, serial string) ([]Transaction, error)
}

// HTTPService implements Service over the REST backend
type HTTPService struct {
	client *transport.Client
}

// NewHTTPService creates a Service backed by client
func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

// GetAsset fetches one asset with its resolved children
func (s *HTTPService) GetAsset(ctx context.Context, serial string) (Asset, error) {
	var resp transport.DetailResponse[Asset]
	if err := s.client.Get(ctx, "assets/"+url.PathEscape(serial), nil, &resp); err != nil {
		return Asset{}, err
	}
	return Normalize(resp.Data), nil
}

// GetTransactions fetches the property changes recorded for an asset
func (s *HTTPService) GetTransactions(ctx context.Context, serial string) ([]Transaction, error) {
	var resp transport.ListResponse[[]Transaction]
	if err := s.client.Get(ctx, "assets/"+url.PathEscape(serial)+"/transactions", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Transaction{}, nil
	}
	return resp.Data, nil
}
