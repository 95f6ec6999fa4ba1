// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

const defaultSearchSize = 1000

// ElasticsearchSource reads provider documents from a search index. Each
// document's _source is a provider in its JSON form. The vocabularies are
// derived from the records.
type ElasticsearchSource struct {
	Client *elasticsearch.Client
	Index  string
	Size   int
}

func (s ElasticsearchSource) Name() string { return "elasticsearch:" + s.Index }

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Source models.Provider `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s ElasticsearchSource) Load(ctx context.Context) (*Data, error) {
	if s.Index == "" {
		return nil, ErrIndexNotFound
	}
	size := s.Size
	if size <= 0 {
		size = defaultSearchSize
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"position": map[string]interface{}{"order": "asc", "unmapped_type": "long"}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.Client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.Index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchQueryFailed, res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSearchQueryFailed, err)
	}

	providers := make([]*models.Provider, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		p := hit.Source
		if p.ID == "" {
			p.ID = hit.ID
		}
		providers = append(providers, &p)
	}
	return &Data{Providers: providers}, nil
}
