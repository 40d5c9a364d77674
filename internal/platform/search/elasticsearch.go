package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	es "github.com/elastic/go-elasticsearch/v9"
)

// ElasticsearchConfig holds connection settings for the search cluster.
type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

func (c ElasticsearchConfig) Enabled() bool {
	return len(c.Addresses) > 0
}

// NewElasticsearchClient builds a client and verifies the cluster answers.
func NewElasticsearchClient(ctx context.Context, cfg ElasticsearchConfig) (*es.Client, error) {
	client, err := es.NewClient(es.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), strings.TrimSpace(string(body)))
	}
	return client, nil
}
