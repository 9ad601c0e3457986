// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package testinfra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/marquee/internal/models"
)

const (
	// DefaultElasticsearchImage matches the cluster version Marquee targets.
	DefaultElasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.17.0"

	// DefaultElasticsearchPort is the HTTP API port.
	DefaultElasticsearchPort = "9200"
)

// ElasticsearchContainer is a running single-node cluster with security
// disabled.
type ElasticsearchContainer struct {
	testcontainers.Container
	URL    string
	Client *elasticsearch.Client
}

// ElasticsearchOption configures the container.
type ElasticsearchOption func(*elasticsearchConfig)

type elasticsearchConfig struct {
	image        string
	startTimeout time.Duration
}

// WithElasticsearchImage overrides the image.
func WithElasticsearchImage(image string) ElasticsearchOption {
	return func(c *elasticsearchConfig) {
		c.image = image
	}
}

// WithStartTimeout sets how long to wait for the cluster health endpoint.
func WithStartTimeout(timeout time.Duration) ElasticsearchOption {
	return func(c *elasticsearchConfig) {
		c.startTimeout = timeout
	}
}

// NewElasticsearchContainer starts a cluster and waits until it reports
// yellow or green health.
func NewElasticsearchContainer(ctx context.Context, opts ...ElasticsearchOption) (*ElasticsearchContainer, error) {
	cfg := &elasticsearchConfig{
		image:        DefaultElasticsearchImage,
		startTimeout: 3 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	port := DefaultElasticsearchPort + "/tcp"
	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{port},
		Env: map[string]string{
			"discovery.type":         "single-node",
			"xpack.security.enabled": "false",
			"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
		},
		WaitingFor: wait.ForHTTP("/_cluster/health?wait_for_status=yellow").
			WithPort(port).
			WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, DefaultElasticsearchPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	url := fmt.Sprintf("http://%s:%s", host, mapped.Port())
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("create seed client: %w", err)
	}

	return &ElasticsearchContainer{Container: container, URL: url, Client: client}, nil
}

// SeedMovies creates index with the movies mapping and indexes movies by id.
// The index is refreshed before returning so the documents are searchable.
func (c *ElasticsearchContainer) SeedMovies(ctx context.Context, index string, movies []models.MovieItem) error {
	docs := make([]seedDoc, len(movies))
	for i := range movies {
		docs[i] = seedDoc{id: movies[i].ID, body: movies[i]}
	}
	mapping, err := MoviesMapping()
	if err != nil {
		return fmt.Errorf("build movies mapping: %w", err)
	}
	return c.seed(ctx, index, mapping, docs)
}

// SeedInteractions creates index with the user_preferences mapping and
// indexes records by id.
func (c *ElasticsearchContainer) SeedInteractions(ctx context.Context, index string, records []models.InteractionRecord) error {
	docs := make([]seedDoc, len(records))
	for i := range records {
		docs[i] = seedDoc{id: records[i].ID, body: records[i]}
	}
	mapping, err := PreferencesMapping()
	if err != nil {
		return fmt.Errorf("build preferences mapping: %w", err)
	}
	return c.seed(ctx, index, mapping, docs)
}

type seedDoc struct {
	id   string
	body any
}

func (c *ElasticsearchContainer) seed(ctx context.Context, index string, mapping []byte, docs []seedDoc) error {
	res, err := c.Client.Indices.Create(index,
		c.Client.Indices.Create.WithContext(ctx),
		c.Client.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err := checkResponse("create index "+index, res, err); err != nil {
		return err
	}

	for _, d := range docs {
		body, err := json.Marshal(d.body)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", index, d.id, err)
		}
		res, err := c.Client.Index(index, bytes.NewReader(body),
			c.Client.Index.WithContext(ctx),
			c.Client.Index.WithDocumentID(d.id),
		)
		if err := checkResponse("index "+index+"/"+d.id, res, err); err != nil {
			return err
		}
	}

	res, err = c.Client.Indices.Refresh(
		c.Client.Indices.Refresh.WithContext(ctx),
		c.Client.Indices.Refresh.WithIndex(index),
	)
	return checkResponse("refresh "+index, res, err)
}

func checkResponse(op string, res *esapi.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s: %s: %s", op, res.Status(), msg)
	}
	io.Copy(io.Discard, res.Body) //nolint:errcheck
	return nil
}
