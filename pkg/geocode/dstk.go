package geocode

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	// DSTKName is the identifier of the DataScienceToolkit provider.
	DSTKName = "data_science_toolkit"

	// DefaultDSTKBaseURL is the public DataScienceToolkit host.
	DefaultDSTKBaseURL = "http://www.datasciencetoolkit.org"

	dstkDisplayName = "DataScienceToolkit"
)

// DSTKOption configures the DataScienceToolkit provider.
type DSTKOption func(*DataScienceToolkit)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(base string) DSTKOption {
	return func(p *DataScienceToolkit) {
		if base != "" {
			p.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// DataScienceToolkit geocodes street addresses and IPv4 literals through the
// DataScienceToolkit street2coordinates and ip2coordinates endpoints.
type DataScienceToolkit struct {
	transport Transport
	baseURL   string
}

var _ Provider = (*DataScienceToolkit)(nil)

// NewDataScienceToolkit creates a provider that issues requests through t.
func NewDataScienceToolkit(t Transport, opts ...DSTKOption) *DataScienceToolkit {
	p := &DataScienceToolkit{
		transport: t,
		baseURL:   DefaultDSTKBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *DataScienceToolkit) Name() string { return DSTKName }

// Geocode implements Provider. Reserved IPv4 addresses are answered locally
// with a localhost stub; everything else costs exactly one upstream request.
func (p *DataScienceToolkit) Geocode(ctx context.Context, query string) ([]Location, error) {
	kind := ClassifyQuery(query)
	switch kind {
	case QueryEmpty:
		return nil, p.unsupported("does not support empty addresses")
	case QueryIPv6:
		return nil, p.unsupported("does not support IPv6 addresses")
	}

	query = strings.TrimSpace(query)
	if kind == QueryIPv4 && IsLocalIPv4(query) {
		zap.L().Debug("dstk: local address, skipping upstream", zap.String("query", query))
		return []Location{localhostLocation()}, nil
	}

	endpoint := p.endpoint(kind, query)
	zap.L().Debug("dstk: geocode",
		zap.String("kind", kind.String()),
		zap.String("url", endpoint),
	)

	body, err := p.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, &NoResultError{URL: endpoint, Reason: ReasonEmptyResponse, Err: err}
	}
	if strings.TrimSpace(body) == "" {
		return nil, &NoResultError{URL: endpoint, Reason: ReasonEmptyResponse}
	}

	loc, err := parseDSTKResponse(body, query)
	if err != nil {
		return nil, &NoResultError{URL: endpoint, Reason: ReasonMalformedResponse, Err: err}
	}
	if loc == nil {
		return nil, &NoResultError{URL: endpoint, Reason: ReasonNotFound}
	}
	return []Location{*loc}, nil
}

// Reverse implements Provider. DataScienceToolkit has no reverse endpoint.
func (p *DataScienceToolkit) Reverse(_ context.Context, _, _ float64) ([]Location, error) {
	return nil, p.unsupported("is not able to do reverse geocoding")
}

func (p *DataScienceToolkit) endpoint(kind QueryKind, query string) string {
	if kind == QueryIPv4 {
		return p.baseURL + "/ip2coordinates/" + query
	}
	return p.baseURL + "/street2coordinates/" + url.QueryEscape(query)
}

func (p *DataScienceToolkit) unsupported(reason string) error {
	return &UnsupportedOperationError{Provider: dstkDisplayName, Reason: reason}
}
