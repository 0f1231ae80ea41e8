/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"banglapay-wallet-go/internal/models"
)

func Load() (*models.Config, error) {
	requestTimeout, err := getEnvDuration("API_REQUEST_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	responseHeaderTimeout, err := getEnvDuration("API_RESPONSE_HEADER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	dialTimeout, err := getEnvDuration("API_DIAL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	tlsHandshakeTimeout, err := getEnvDuration("API_TLS_HANDSHAKE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	baseURL := getEnvString("API_BASE_URL", "http://localhost:5000/api/v1")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API_BASE_URL: %q", baseURL)
	}

	return &models.Config{
		Api: models.ApiConfig{
			BaseURL:               baseURL,
			RequestTimeout:        requestTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			DialTimeout:           dialTimeout,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			Token:                 getEnvString("API_TOKEN", ""),
		},
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "banglapay.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Dashboard: models.DashboardConfig{
			PageSize:  getEnvInt("DASHBOARD_PAGE_SIZE", 10),
			DateRange: getEnvString("DASHBOARD_DATE_RANGE", "7"),
			ViewsFile: getEnvString("DASHBOARD_FILE", ""),
		},
		Logging: LoadLogging(),
	}, nil
}

// LoadLogging reads only the logging settings so the logger can be built
// before the rest of the configuration is validated.
func LoadLogging() models.LoggingConfig {
	return models.LoggingConfig{
		Development: getEnvBool("LOG_DEVELOPMENT", false),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
