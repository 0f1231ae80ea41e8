package models

import "time"

// Config represents the application configuration
type Config struct {
	Api       ApiConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
}

// ApiConfig holds wallet backend connection settings
type ApiConfig struct {
	BaseURL               string
	RequestTimeout        time.Duration
	ResponseHeaderTimeout time.Duration
	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	// Token, when set, runs the session in memory with this credential and
	// leaves the local database untouched.
	Token string
}

// DatabaseConfig holds local storage settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DashboardConfig holds list presentation defaults
type DashboardConfig struct {
	PageSize  int
	DateRange string
	ViewsFile string
}

type LoggingConfig struct {
	Development bool
}
