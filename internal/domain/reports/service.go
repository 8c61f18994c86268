package reports

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/domain/verticals"
	"github.com/gestox/gestox/internal/platform/apiclient"
	"github.com/gestox/gestox/internal/platform/servercall"
)

// Summary is the dashboard's headline numbers: one count per resource the
// tenant's vertical cares about. Counts that could not be loaded come back
// as -1 so the screen can show a placeholder instead of a fake zero.
type Summary struct {
	Vertical verticals.Key  `json:"vertical"`
	Counts   map[string]int `json:"counts"`
}

// verticalResources names the backend collections counted per vertical.
var verticalResources = map[verticals.Key][]string{
	verticals.KeyRealEstate: {"/properties", "/leads"},
	verticals.KeyClinic:     {"/doctor-appointments", "/patients", "/doctors"},
	verticals.KeyAutoParts:  {"/products", "/orders", "/suppliers"},
}

type Service struct {
	fetch *servercall.Fetcher
	log   zerolog.Logger
}

func NewService(fetch *servercall.Fetcher, log zerolog.Logger) *Service {
	return &Service{fetch: fetch, log: log}
}

// Summarize counts each resource of the tenant's vertical. A failed count
// degrades that one entry, not the whole summary.
func (s *Service) Summarize(c echo.Context, v verticals.Vertical) Summary {
	paths := verticalResources[v.Key]
	summary := Summary{Vertical: v.Key, Counts: make(map[string]int, len(paths))}
	for _, path := range paths {
		summary.Counts[resourceName(path)] = s.count(c, path)
	}
	return summary
}

func (s *Service) count(c echo.Context, path string) int {
	env, err := s.fetch.Get(c, path, apiclient.WithQuery("limit", "1"))
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("count failed")
		return -1
	}

	var page struct {
		Items []interface{} `json:"items"`
		Total int           `json:"total"`
	}
	if err := env.Decode(&page); err == nil && page.Total > 0 {
		return page.Total
	}
	var records []interface{}
	if err := env.Decode(&records); err == nil {
		return len(records)
	}
	return 0
}

func resourceName(path string) string {
	return strings.TrimPrefix(path, "/")
}
