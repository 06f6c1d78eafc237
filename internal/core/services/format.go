package services

import "github.com/voxline-studio/backend/internal/core/domain"

// assembleBlueprint shapes the validated sections into the final document.
// Shape only — every invariant was already enforced section by section.
func assembleBlueprint(acc sections) domain.Blueprint {
	return domain.Blueprint{
		CoreConcept: *acc.concept,
		Script:      *acc.script,
		VisualPlan:  *acc.visual,
		AudioPlan:   *acc.audio,
		Research:    acc.research,
		Workflow:    *acc.workflow,
	}
}
