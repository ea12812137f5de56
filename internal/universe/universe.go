package universe

import "StockSentinel/internal/model"

// Lister supplies the tradable security universe for a scan run.
type Lister interface {
	List() ([]model.Security, error)
	Name() string
}

// StaticLister serves a fixed universe, for development and testing.
type StaticLister struct {
	Securities []model.Security
}

func (s *StaticLister) List() ([]model.Security, error) { return s.Securities, nil }

func (s *StaticLister) Name() string { return "static" }
