package acl

import (
	"context"
	"net/url"

	"parttrack/modules/platform/transport"
)

// Service is the backend boundary of the access-control screens
type Service interface {
	ListAcl(ctx context.Context) ([]Entry, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	RequestAccess(ctx context.Context, req AccessRequest) (Entry, error)
	CountPending(ctx context.Context) (int, error)
	CountTransactions(ctx context.Context) (int, error)
}

// HTTPService implements Service over the REST backend
type HTTPService struct {
	client *transport.Client
}

// NewHTTPService creates a Service backed by client
func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

// ListAcl fetches every entry visible to the caller
func (s *HTTPService) ListAcl(ctx context.Context) ([]Entry, error) {
	var resp transport.ListResponse[[]Entry]
	if err := s.client.Get(ctx, "acl", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Entry{}, nil
	}
	return resp.Data, nil
}

// UpdateStatus moves an entry to status
func (s *HTTPService) UpdateStatus(ctx context.Context, id string, status Status) error {
	body := map[string]Status{"status": status}
	return s.client.Put(ctx, "acl/"+url.PathEscape(id), body, nil)
}

// RequestAccess creates a pending entry towards another manufacturer
func (s *HTTPService) RequestAccess(ctx context.Context, req AccessRequest) (Entry, error) {
	var resp transport.DetailResponse[Entry]
	if err := s.client.Post(ctx, "acl", req, &resp); err != nil {
		return Entry{}, err
	}
	return resp.Data, nil
}

// CountPending returns the number of access requests awaiting a decision
func (s *HTTPService) CountPending(ctx context.Context) (int, error) {
	return s.count(ctx, "acl/pending/count")
}

// CountTransactions returns the number of transactions awaiting a decision
func (s *HTTPService) CountTransactions(ctx context.Context) (int, error) {
	return s.count(ctx, "transactions/pending/count")
}

func (s *HTTPService) count(ctx context.Context, path string) (int, error) {
	var resp transport.DetailResponse[int]
	if err := s.client.Get(ctx, path, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Data < 0 {
		return 0, nil
	}
	return resp.Data, nil
}
