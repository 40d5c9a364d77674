package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	es "github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const DefaultIndex = "products"

var _ ports.SearchIndex = (*Index)(nil)

// Index keeps a product search index in Elasticsearch.
type Index struct {
	client *es.Client
	name   string
}

func NewIndex(client *es.Client, name string) *Index {
	if strings.TrimSpace(name) == "" {
		name = DefaultIndex
	}
	return &Index{client: client, name: name}
}

type document struct {
	ID          string `json:"id"`
	StoreID     string `json:"storeId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	Active      bool   `json:"active"`
}

const mapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "storeId":     {"type": "keyword"},
      "sku":         {"type": "keyword"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "active":      {"type": "boolean"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (i *Index) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.name}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", i.name, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	res, err = i.client.Indices.Create(i.name,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (i *Index) Index(ctx context.Context, product *domain.Product) error {
	body, err := json.Marshal(document{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Name:        product.Name,
		Description: product.Description,
		SKU:         product.SKU,
		Active:      product.Active,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: product.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index product %s: %w", product.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index product", res)
	}
	return nil
}

func (i *Index) Search(ctx context.Context, storeID, query string, skip, take int) ([]string, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"storeId": storeID},
				},
			},
		},
		"_source": []string{"id"},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.name),
		i.client.Search.WithBody(&buf),
		i.client.Search.WithFrom(skip),
		i.client.Search.WithSize(take),
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search products", res)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}

func responseError(op string, res *esapi.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("%s: elasticsearch returned %s: %s", op, res.Status(), strings.TrimSpace(string(detail)))
}
