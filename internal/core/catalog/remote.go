package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-adapter/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// RemoteSource 透過 HTTP 查詢策展服務的替代目錄
type RemoteSource struct {
	client *resty.Client
}

// NewRemoteSource 建立遠端目錄客戶端
func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("X-Title", "Recipe Adapter")

	return &RemoteSource{client: client}
}

// FetchSubstitutions 查詢單一食材的替代紀錄
func (s *RemoteSource) FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("ingredient", NormalizeIngredient(ingredient)).
		Get("/substitutions")

	if err != nil {
		return nil, fmt.Errorf("failed to query substitution catalog: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return []common.SubstitutionRecord{}, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrCatalogUnavailable, resp.StatusCode())
	}

	recs, err := CoerceRecords(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return recs, nil
}
