// Package searchport implements the Search Port (C4): typed document
// fetch plus query/list/search over named indices, backed by
// Elasticsearch via github.com/elastic/go-elasticsearch/v8 — the
// standard ecosystem client for this role; no example repo in the pack
// ships one (see DESIGN.md for the per-dependency justification).
package searchport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
	"github.com/kinoflow/kinoflow/internal/apierr"
)

// Document pairs a document id with its raw JSON body, the unit
// bulk_index and get/list/search operate on.
type Document struct {
	ID   string
	Body []byte
}

// Port is the Search Port contract consumed by the ETL Loader and the
// Film/Genre/Person services.
type Port interface {
	Get(ctx context.Context, resource, id string) ([]byte, bool, error)
	List(ctx context.Context, resource string, pageSize, pageNumber int, sort string) ([][]byte, error)
	SearchByField(ctx context.Context, resource, field, query string, pageSize, pageNumber int, sort string) ([][]byte, error)
	SearchRaw(ctx context.Context, resource string, query Query, pageSize, pageNumber int, sort string) ([][]byte, error)
	BulkIndex(ctx context.Context, resource string, docs []Document) (int, error)
	CreateIndex(ctx context.Context, resource string, mapping []byte) error
}

// Client implements Port over a single go-elasticsearch client.
type Client struct {
	es *elasticsearch.Client
}

// New wraps an established go-elasticsearch client.
func New(es *elasticsearch.Client) *Client {
	return &Client{es: es}
}

// Dial constructs a go-elasticsearch client from node addresses and
// pings it to fail fast on misconfiguration.
func Dial(ctx context.Context, addresses []string) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("searchport: build client: %w", err)
	}
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("searchport: ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("searchport: ping returned %s", res.Status())
	}
	return es, nil
}

// offset computes the 1-based-page offset per spec.md §4.4.
func offset(pageSize, pageNumber int) int {
	return (pageNumber - 1) * pageSize
}

// sortClause renders the sort convention (optional leading "-" means
// descending) into the ES {field: {order}} array form. Empty sort omits
// the clause (ES defaults to _score then _doc).
func sortClause(sort string) []map[string]any {
	if sort == "" {
		return nil
	}
	field, order := ParseSort(sort)
	return []map[string]any{{field: map[string]any{"order": order}}}
}

// ParseSort splits a sort string on its optional leading "-" into
// (field, "asc"|"desc").
func ParseSort(sort string) (field, order string) {
	if strings.HasPrefix(sort, "-") {
		return sort[1:], "desc"
	}
	return sort, "asc"
}

func (c *Client) Get(ctx context.Context, resource, id string) ([]byte, bool, error) {
	res, err := c.es.Get(resource, id, c.es.Get.WithContext(ctx))
	if err != nil {
		return nil, false, apierr.BackendUnavailable("search_port.get", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, false, nil
	}
	if res.IsError() {
		return nil, false, apierr.BackendUnavailable("search_port.get", fmt.Errorf("status %s", res.Status()))
	}

	var envelope struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, false, apierr.BackendUnavailable("search_port.get", err)
	}
	return envelope.Source, true, nil
}

func (c *Client) List(ctx context.Context, resource string, pageSize, pageNumber int, sort string) ([][]byte, error) {
	return c.SearchRaw(ctx, resource, MatchAll{}, pageSize, pageNumber, sort)
}

func (c *Client) SearchByField(ctx context.Context, resource, field, query string, pageSize, pageNumber int, sort string) ([][]byte, error) {
	return c.SearchRaw(ctx, resource, MultiMatch{Query: query, Fields: []string{field}}, pageSize, pageNumber, sort)
}

func (c *Client) SearchRaw(ctx context.Context, resource string, query Query, pageSize, pageNumber int, sort string) ([][]byte, error) {
	body := map[string]any{
		"query": ToDSL(query),
		"size":  pageSize,
		"from":  offset(pageSize, pageNumber),
	}
	if clause := sortClause(sort); clause != nil {
		body["sort"] = clause
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, apierr.BackendUnavailable("search_port.search", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(resource),
		c.es.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, apierr.BackendUnavailable("search_port.search", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apierr.BackendUnavailable("search_port.search", fmt.Errorf("status %s", res.Status()))
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, apierr.BackendUnavailable("search_port.search", err)
	}

	docs := make([][]byte, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

// BulkIndex builds an NDJSON bulk upsert body keyed by each doc's ID,
// grounded on the original ElasticSearchLoader.load's bulk body
// construction: one action line plus one source line per document.
func (c *Client) BulkIndex(ctx context.Context, resource string, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	for _, d := range docs {
		action := map[string]any{
			"index": map[string]any{"_index": resource, "_id": d.ID},
		}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return 0, apierr.BackendUnavailable("search_port.bulk_index", err)
		}
		buf.Write(actionLine)
		buf.WriteByte('\n')
		buf.Write(d.Body)
		buf.WriteByte('\n')
	}

	res, err := c.es.Bulk(bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(resource),
	)
	if err != nil {
		return 0, apierr.BackendUnavailable("search_port.bulk_index", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, apierr.BackendUnavailable("search_port.bulk_index", fmt.Errorf("status %s", res.Status()))
	}

	var envelope struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return 0, apierr.BackendUnavailable("search_port.bulk_index", err)
	}

	succeeded := 0
	for _, item := range envelope.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			succeeded++
		}
	}
	return succeeded, nil
}

// CreateIndex creates resource from mapping, treating "already exists"
// as success (spec.md §4.6: ensure_indices is idempotent).
func (c *Client) CreateIndex(ctx context.Context, resource string, mapping []byte) error {
	res, err := c.es.Indices.Create(
		resource,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err != nil {
		return apierr.BackendUnavailable("search_port.create_index", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		if res.StatusCode == 400 && bytes.Contains(raw, []byte("resource_already_exists_exception")) {
			return nil
		}
		return apierr.BackendUnavailable("search_port.create_index", fmt.Errorf("status %s: %s", res.Status(), raw))
	}
	return nil
}
