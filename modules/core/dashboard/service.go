package dashboard

import (
	"context"

	"parttrack/modules/platform/transport"
)

// Service is the backend boundary of the dashboard
type Service interface {
	GetSummary(ctx context.Context) (Summary, error)
}

// HTTPService implements Service over the REST backend
type HTTPService struct {
	client *transport.Client
}

// NewHTTPService creates a Service backed by client
func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

// GetSummary fetches the dashboard aggregates
func (s *HTTPService) GetSummary(ctx context.Context) (Summary, error) {
	var resp transport.DetailResponse[Summary]
	if err := s.client.Get(ctx, "dashboard", nil, &resp); err != nil {
		return Summary{}, err
	}
	return resp.Data, nil
}
