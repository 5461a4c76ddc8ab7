package rules

import (
	"github.com/thai-lint/thailint-go/dry"
)

// RegisterDefaults populates reg with every built-in rule (§4.8). The DRY
// rule is constructed around dryEngine rather than built internally, since
// the engine owns a cache handle the caller must Close.
func RegisterDefaults(reg *Registry, dryEngine *dry.Engine) {
	reg.Register(NewNestingRule())
	reg.Register(NewSRPRule())
	reg.Register(NewStatelessClassRule())
	reg.Register(NewMagicNumbersRule())
	reg.Register(NewLBYLRule())
	reg.Register(NewMethodPropertyRule())
	reg.Register(NewCollectionPipelineRule())
	reg.Register(NewStringlyTypedRule())
	reg.Register(NewFileHeaderRule())
	reg.Register(NewFilePlacementRule())
	reg.Register(NewDRYRule(dryEngine))
}
