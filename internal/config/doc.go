// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2:

 1. Defaults: built-in values from defaultConfig()
 2. Config file: optional YAML (CONFIG_PATH, config.yaml, /etc/marquee/config.yaml)
 3. Environment variables: mapped names such as HTTP_PORT or ELASTICSEARCH_URLS

Later layers override earlier ones.

# Sections

  - server: HTTP listener, timeouts, environment
  - elasticsearch: cluster addresses, credentials, index names, circuit breaker
  - history: which backend supplies interaction history (elasticsearch or duckdb)
  - database: DuckDB history store
  - recommend: result sizes, request timeout, catalog lookup concurrency
  - security: CORS origins and rate limiting
  - logging: level, format, caller

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0)
  - HTTP_PORT (default: 8080)
  - HTTP_TIMEOUT (default: 30s)
  - SHUTDOWN_TIMEOUT (default: 15s)
  - ENVIRONMENT (default: development)

Elasticsearch:
  - ELASTICSEARCH_URLS: comma-separated (default: http://localhost:9200)
  - ELASTICSEARCH_USERNAME, ELASTICSEARCH_PASSWORD, ELASTICSEARCH_API_KEY
  - ES_MOVIES_INDEX (default: movies)
  - ES_PREFERENCES_INDEX (default: user_preferences)
  - ES_MAX_RETRIES (default: 0)
  - ES_BREAKER_TIMEOUT, ES_BREAKER_FAILURE_RATIO, ES_BREAKER_MIN_REQUESTS

History and DuckDB:
  - HISTORY_BACKEND: elasticsearch or duckdb (default: elasticsearch)
  - HISTORY_PAGE_SIZE: records per Elasticsearch history page (default: 1000)
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS

Recommendations:
  - RECOMMEND_DEFAULT_SIZE (default: 10)
  - RECOMMEND_MAX_SIZE (default: 100)
  - RECOMMEND_TIMEOUT (default: 5s)
  - RECOMMEND_LOOKUP_CONCURRENCY (default: 8)

Security and logging:
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Thread Safety

Config is immutable after Load() and safe for concurrent reads.
*/
package config
