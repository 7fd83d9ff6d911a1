package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/grantsscope/wrapped/internal/errors"
)

// CIDPlaceholder is replaced by the resolved version id in a gateway template.
const CIDPlaceholder = "{cid}"

// maxPointerBytes bounds the pointer body; a CID is well under this.
const maxPointerBytes = 1 << 10

// Resolver turns the published dataset version pointer into the base URL
// under which the parquet relations live.
type Resolver struct {
	client          *http.Client
	pointerURL      string
	gatewayTemplate string
	gatewayURL      string
}

// NewResolver creates a Resolver. When gatewayURL is non-empty it is used
// as-is and the pointer is never fetched.
func NewResolver(pointerURL, gatewayTemplate, gatewayURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		client:          &http.Client{Timeout: timeout},
		pointerURL:      pointerURL,
		gatewayTemplate: gatewayTemplate,
		gatewayURL:      gatewayURL,
	}
}

// BaseURL returns the dataset base URL without a trailing slash. The
// pointer fetch is a single attempt: any network error or non-200 status
// is an upstream fetch failure.
func (r *Resolver) BaseURL(ctx context.Context) (string, error) {
	if r.gatewayURL != "" {
		return strings.TrimRight(r.gatewayURL, "/"), nil
	}

	cid, err := r.fetchPointer(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUpstreamFetch, "resolving dataset pointer", err)
	}
	return strings.TrimRight(strings.ReplaceAll(r.gatewayTemplate, CIDPlaceholder, cid), "/"), nil
}

func (r *Resolver) fetchPointer(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.pointerURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", r.pointerURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", r.pointerURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPointerBytes))
	if err != nil {
		return "", fmt.Errorf("reading pointer body: %w", err)
	}
	cid := strings.TrimSpace(string(body))
	if cid == "" {
		return "", fmt.Errorf("pointer at %s is empty", r.pointerURL)
	}
	return cid, nil
}
