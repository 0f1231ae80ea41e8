package common

import (
	"fmt"
	"os"
	"path/filepath"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/pipeline"

	"gopkg.in/yaml.v2"
)

type ViewConfig struct {
	Role      string `yaml:"role"`
	PageSize  int    `yaml:"page_size"`
	DateRange string `yaml:"date_range"`
}

type ViewsConfig struct {
	Views []ViewConfig `yaml:"views"`
}

// ViewSettings are the resolved list defaults for one dashboard.
type ViewSettings struct {
	PageSize  int
	DateRange pipeline.DateRange
}

func LoadViewConfig(viewsFile string) ([]ViewConfig, error) {
	var viewsPath string
	if filepath.IsAbs(viewsFile) {
		viewsPath = viewsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		viewsPath = filepath.Join(wd, viewsFile)
	}

	data, err := os.ReadFile(viewsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", viewsFile, err)
	}

	var config ViewsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", viewsFile, err)
	}

	for i, view := range config.Views {
		if !models.Role(view.Role).Valid() {
			return nil, fmt.Errorf("view at index %d has unknown role %q", i, view.Role)
		}
		if view.PageSize < 0 {
			return nil, fmt.Errorf("view at index %d has negative page_size", i)
		}
		if _, err := pipeline.ParseDateRange(view.DateRange); err != nil {
			return nil, fmt.Errorf("view at index %d: %w", i, err)
		}
	}

	return config.Views, nil
}

// ResolveViewSettings applies the views file entry for role, if any, over the
// environment defaults. The default date range only applies to the admin
// transaction list; user and agent lists show everything unless configured.
func ResolveViewSettings(cfg models.DashboardConfig, role models.Role) (ViewSettings, error) {
	dateRange, err := pipeline.ParseDateRange(cfg.DateRange)
	if err != nil {
		return ViewSettings{}, fmt.Errorf("invalid DASHBOARD_DATE_RANGE: %w", err)
	}
	settings := ViewSettings{PageSize: cfg.PageSize, DateRange: pipeline.RangeAll}
	if role == models.RoleAdmin {
		settings.DateRange = dateRange
	}

	if cfg.ViewsFile != "" {
		views, err := LoadViewConfig(cfg.ViewsFile)
		if err != nil {
			return ViewSettings{}, err
		}
		for _, view := range views {
			if models.Role(view.Role) != role {
				continue
			}
			if view.PageSize > 0 {
				settings.PageSize = view.PageSize
			}
			if view.DateRange != "" {
				settings.DateRange, _ = pipeline.ParseDateRange(view.DateRange)
			}
		}
	}

	if settings.PageSize <= 0 {
		settings.PageSize = pipeline.DefaultPageSize
	}
	return settings, nil
}
