// Package services wires meetmind's components together behind a single
// registry so command handlers share one set of instances.
package services

import (
	"github.com/kararlabs/meetmind/internal/heuristic"
	"github.com/kararlabs/meetmind/internal/ledger"
	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/orchestrator"
	"github.com/kararlabs/meetmind/internal/scrub"
	"github.com/kararlabs/meetmind/internal/telemetry"
)

// Registry provides access to all meetmind services.
// Use accessor methods to retrieve individual services.
type Registry interface {
	Orchestrator() *orchestrator.Service
	Meetings() meeting.Repository
	Ledger() *ledger.Ledger
	Extractor() *heuristic.Extractor
	Scrubber() *scrub.Scrubber
	Metrics() *telemetry.Metrics
}

// Options configures the registry with service instances.
type Options struct {
	Orchestrator *orchestrator.Service
	Meetings     meeting.Repository
	Ledger       *ledger.Ledger
	Extractor    *heuristic.Extractor
	Scrubber     *scrub.Scrubber
	Metrics      *telemetry.Metrics
}

// registry is the concrete implementation of Registry.
type registry struct {
	orchestrator *orchestrator.Service
	meetings     meeting.Repository
	ledger       *ledger.Ledger
	extractor    *heuristic.Extractor
	scrubber     *scrub.Scrubber
	metrics      *telemetry.Metrics
}

// NewRegistry creates a new service registry.
func NewRegistry(opts Options) Registry {
	return &registry{
		orchestrator: opts.Orchestrator,
		meetings:     opts.Meetings,
		ledger:       opts.Ledger,
		extractor:    opts.Extractor,
		scrubber:     opts.Scrubber,
		metrics:      opts.Metrics,
	}
}

func (r *registry) Orchestrator() *orchestrator.Service { return r.orchestrator }
func (r *registry) Meetings() meeting.Repository        { return r.meetings }
func (r *registry) Ledger() *ledger.Ledger              { return r.ledger }
func (r *registry) Extractor() *heuristic.Extractor     { return r.extractor }
func (r *registry) Scrubber() *scrub.Scrubber           { return r.scrubber }
func (r *registry) Metrics() *telemetry.Metrics         { return r.metrics }
