package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/infrastructure/resilience"
)

const maxTemplateSize = 1 << 20 // 1 MiB

// Source fetches document templates by reference. An http(s) reference is
// fetched over the network with retry and circuit breaking; anything else is
// read as a local file path.
type Source struct {
	client   *http.Client
	executor *resilience.Executor
}

func NewSource(executor *resilience.Executor) *Source {
	return &Source{
		client:   &http.Client{Timeout: 10 * time.Second},
		executor: executor,
	}
}

func (s *Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return s.fetchHTTP(ctx, ref)
	}

	raw, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.WrapError(domain.ErrNoTemplate, "fetch template", err)
		}
		return nil, fmt.Errorf("read template file: %w", err)
	}
	return raw, nil
}

func (s *Source) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	var raw []byte
	call := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build template request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch template: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return domain.WrapError(domain.ErrNoTemplate, "fetch template", fmt.Errorf("template %s not found", url))
		case resp.StatusCode >= 500:
			return domain.WrapError(domain.ErrTemporary, "fetch template", fmt.Errorf("upstream status %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("fetch template: unexpected status %d", resp.StatusCode)
		}

		raw, err = io.ReadAll(io.LimitReader(resp.Body, maxTemplateSize+1))
		if err != nil {
			return fmt.Errorf("read template body: %w", err)
		}
		if len(raw) > maxTemplateSize {
			return fmt.Errorf("template exceeds %d bytes", maxTemplateSize)
		}
		return nil
	}

	var err error
	if s.executor != nil {
		err = s.executor.Execute(ctx, "template.fetch", call, classifyFetchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func classifyFetchError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrNoTemplate) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	var netErr net.Error
	if errors.As(err, &netErr) || domain.IsKind(err, domain.ErrTemporary) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
