package assetslist

import (
	"context"
	"net/url"

	"parttrack/modules/core/assets"
	"parttrack/modules/platform/transport"
)

// Service is the backend boundary of the assets list
type Service interface {
	ListAssets(ctx context.Context, query url.Values) (transport.ListResponse[[]assets.Asset], error)
}

// HTTPService implements Service over the REST backend
type HTTPService struct {
	client *transport.Client
}

// NewHTTPService creates a Service backed by client
func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

// ListAssets fetches one filtered page
func (s *HTTPService) ListAssets(ctx context.Context, query url.Values) (transport.ListResponse[[]assets.Asset], error) {
	var resp transport.ListResponse[[]assets.Asset]
	if err := s.client.Get(ctx, "assets", query, &resp); err != nil {
		return resp, err
	}
	for i, a := range resp.Data {
		resp.Data[i] = assets.Normalize(a)
	}
	if resp.Data == nil {
		resp.Data = []assets.Asset{}
	}
	return resp, nil
}
