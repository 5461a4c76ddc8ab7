package orchestrator

import (
	"github.com/thai-lint/thailint-go/dry"
	"github.com/thai-lint/thailint-go/models"
)

// dryEngineFor constructs the shared DRY engine instance for one run. Kept
// as a single-purpose seam so New's wiring stays a flat readable sequence.
func dryEngineFor(cfg *models.Config) *dry.Engine {
	return dry.NewEngine(cfg)
}
