// Package engine implements the warehouse operations on top of the
// repositories of one transaction: the stock ledger, the FEFO allocator,
// carton packing, order reservations and reference generation.
//
// An Engine never begins or commits a transaction. Callers open a unit of
// work, bind an Engine to it with New, run one operation and commit. Every
// operation either completes or returns an error after which the unit of
// work must be rolled back.
package engine

import (
	"log/slog"
	"time"

	"wms/internal/core/domain/services"
	"wms/internal/core/ports"
)

// DefaultCodeRetryBudget is how many carton codes are tried before a unique
// collision is returned to the caller.
const DefaultCodeRetryBudget = 5

// Recorder receives engine counters. internal/metrics provides the
// prometheus implementation.
type Recorder interface {
	RecordMovement(movementType string, quantity int)
	RecordReservation(operation string, quantity int)
	RecordCodeCollision(kind string)
}

type Options struct {
	Now             func() time.Time
	CodeRetryBudget int
	Planner         ports.PackingPlanner
	Recorder        Recorder
	Logger          *slog.Logger
}

type Engine struct {
	repos    ports.Repositories
	now      func() time.Time
	retries  int
	planner  ports.PackingPlanner
	recorder Recorder
	logger   *slog.Logger
}

// New binds an engine to repos. Zero options fall back to the wall clock,
// DefaultCodeRetryBudget, the first-fit-decreasing planner, no metrics and
// slog.Default.
func New(repos ports.Repositories, opts Options) *Engine {
	e := &Engine{
		repos:    repos,
		now:      opts.Now,
		retries:  opts.CodeRetryBudget,
		planner:  opts.Planner,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.retries <= 0 {
		e.retries = DefaultCodeRetryBudget
	}
	if e.planner == nil {
		e.planner = services.NewFirstFitDecreasing()
	}
	if e.recorder == nil {
		e.recorder = nopRecorder{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.logger = e.logger.With("component", "engine")
	return e
}

type nopRecorder struct{}

func (nopRecorder) RecordMovement(string, int)    {}
func (nopRecorder) RecordReservation(string, int) {}
func (nopRecorder) RecordCodeCollision(string)    {}
