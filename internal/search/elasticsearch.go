// Package search keeps a full-text index of venue packages in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venuebook/internal/shared/config"
	"venuebook/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// PackageDocument is the indexed form of an active venue package
type PackageDocument struct {
	ID           string    `json:"id"`
	VenueID      string    `json:"venue_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Tier         int       `json:"tier"`
	TierName     string    `json:"tier_name"`
	VenueName    string    `json:"venue_name"`
	VenueType    string    `json:"venue_type"`
	Services     []string  `json:"services"`
	ServiceText  string    `json:"service_text"`
	BasePrice    float64   `json:"base_price"`
	BaseCapacity int       `json:"base_capacity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Result holds the matching package ids in relevance order
type Result struct {
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
}

// ElasticsearchClient indexes and searches package documents
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig
	log    *logger.Logger
}

// NewElasticsearchClient connects and makes sure the package index exists
func NewElasticsearchClient(ctx context.Context, cfg config.ElasticsearchConfig, log *logger.Logger) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{
		client: es,
		config: cfg,
		log:    log.WithComponent("search"),
	}

	if err := client.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		c.log.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	body, err := json.Marshal(indexMapping())
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	c.log.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

func indexMapping() map[string]interface{} {
	text := map[string]interface{}{"type": "text", "analyzer": "english"}
	keyword := map[string]interface{}{"type": "keyword"}

	return map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":       keyword,
				"venue_id": keyword,
				"name": map[string]interface{}{
					"type":     "text",
					"analyzer": "english",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
					},
				},
				"description":   text,
				"tier":          map[string]interface{}{"type": "integer"},
				"tier_name":     keyword,
				"venue_name":    text,
				"venue_type":    map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": keyword}},
				"services":      text,
				"service_text":  text,
				"base_price":    map[string]interface{}{"type": "scaled_float", "scaling_factor": 100},
				"base_capacity": map[string]interface{}{"type": "integer"},
				"updated_at":    map[string]interface{}{"type": "date"},
			},
		},
	}
}

// IndexPackage upserts doc
func (c *ElasticsearchClient) IndexPackage(ctx context.Context, doc PackageDocument) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal package: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index package: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing error: %s", res.String())
	}

	return nil
}

// DeletePackage removes a package from the index; a missing document is not an error
func (c *ElasticsearchClient) DeletePackage(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: id,
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete error: %s", res.String())
	}

	return nil
}

// Search runs a relevance-ranked query and returns one page of package ids
func (c *ElasticsearchClient) Search(ctx context.Context, query string, page, pageSize int) (*Result, error) {
	body, err := json.Marshal(BuildSearchRequest(query, page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	result := &Result{
		IDs:   make([]string, 0, len(response.Hits.Hits)),
		Total: response.Hits.Total.Value,
	}
	for _, hit := range response.Hits.Hits {
		result.IDs = append(result.IDs, hit.ID)
	}

	return result, nil
}

// HealthCheck waits for at least a yellow cluster
func (c *ElasticsearchClient) HealthCheck(ctx context.Context) error {
	req := esapi.ClusterHealthRequest{
		WaitForStatus: "yellow",
		Timeout:       10 * time.Second,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("health check error: %s", res.String())
	}

	return nil
}

// NormalizePage clamps page to >= 1 and pageSize to 1..100 (default 10)
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// BuildSearchRequest builds the request body: fuzzy multi_match over the text fields, or match_all ordered by price
func BuildSearchRequest(query string, page, pageSize int) map[string]interface{} {
	page, pageSize = NormalizePage(page, pageSize)

	var q map[string]interface{}
	var sort []map[string]interface{}
	if query == "" {
		q = map[string]interface{}{"match_all": map[string]interface{}{}}
		sort = []map[string]interface{}{
			{"base_price": map[string]interface{}{"order": "asc"}},
		}
	} else {
		q = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "venue_name^2", "venue_type^2", "description", "services", "service_text"},
				"fuzziness": "AUTO",
			},
		}
		sort = []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
			{"base_price": map[string]interface{}{"order": "asc"}},
		}
	}

	return map[string]interface{}{
		"query": q,
		"sort":  sort,
		"from":  (page - 1) * pageSize,
		"size":  pageSize,
	}
}
