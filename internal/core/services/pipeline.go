// Package services contains the blueprint pipeline: prompt composition,
// section orchestration, and final assembly.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxline-studio/backend/internal/core/domain"
	"github.com/voxline-studio/backend/internal/core/ports"
	"github.com/voxline-studio/backend/internal/core/schema"
)

// Pipeline turns a raw brief into a complete Blueprint. It holds only
// injected dependencies; all run state lives in request-scoped locals, so a
// single Pipeline serves concurrent requests.
type Pipeline struct {
	gen   ports.Generator
	intel ports.CompetitorIntel // optional; nil disables research enrichment
	log   *zap.Logger
}

// NewPipeline constructs a Pipeline. intel may be nil.
func NewPipeline(gen ports.Generator, intel ports.CompetitorIntel, log *zap.Logger) *Pipeline {
	return &Pipeline{gen: gen, intel: intel, log: log}
}

// sections accumulates validated output in generation order.
type sections struct {
	concept  *domain.CoreConcept
	script   *domain.Script
	visual   *domain.VisualPlan
	audio    *domain.AudioPlan
	research *domain.Research
	workflow *domain.Workflow
}

// CreateBlueprint runs the full pipeline for one request. Generation is
// strictly sequential because later prompts restate earlier sections'
// facts. Any failure aborts the run; a partial blueprint is never returned.
func (p *Pipeline) CreateBlueprint(ctx context.Context, input domain.BriefInput) (domain.Blueprint, error) {
	brief, err := domain.NormalizeBrief(input)
	if err != nil {
		return domain.Blueprint{}, err
	}

	runID := uuid.NewString()[:8]
	log := p.log.With(zap.String("run_id", runID))
	log.Info("blueprint run started",
		zap.String("topic", brief.Topic),
		zap.Bool("include_research", brief.IncludeResearch),
	)

	profiles := p.lookupCompetitors(ctx, log, brief)

	var acc sections
	for _, kind := range domain.SectionOrder(brief.IncludeResearch) {
		if err := ctx.Err(); err != nil {
			return domain.Blueprint{}, fmt.Errorf("service: run canceled before section %s: %w", kind, err)
		}

		raw, err := p.gen.Generate(ctx, kind, p.compose(kind, brief, &acc, profiles))
		if err != nil {
			log.Warn("section generation failed", zap.String("section", string(kind)), zap.Error(err))
			return domain.Blueprint{}, err
		}

		if err := acc.add(kind, raw); err != nil {
			log.Warn("section rejected by validator", zap.String("section", string(kind)), zap.Error(err))
			return domain.Blueprint{}, err
		}
		log.Info("section complete", zap.String("section", string(kind)))
	}

	log.Info("blueprint run complete")
	return assembleBlueprint(acc), nil
}

// lookupCompetitors enriches the research prompt with live channel data.
// Failures here are logged and swallowed: research still generates, just
// without grounding numbers.
func (p *Pipeline) lookupCompetitors(ctx context.Context, log *zap.Logger, brief domain.Brief) []domain.CompetitorProfile {
	if !brief.IncludeResearch || p.intel == nil || len(brief.Competitors) == 0 {
		return nil
	}
	profiles, err := p.intel.LookupChannels(ctx, brief.Competitors)
	if err != nil {
		log.Warn("competitor lookup failed, research proceeds unenriched", zap.Error(err))
		return nil
	}
	return profiles
}

func (p *Pipeline) compose(kind domain.SectionKind, brief domain.Brief, acc *sections, profiles []domain.CompetitorProfile) string {
	switch kind {
	case domain.SectionCoreConcept:
		return composeConceptInstruction(brief)
	case domain.SectionScript:
		return composeScriptInstruction(brief, *acc.concept)
	case domain.SectionVisualPlan:
		return composeVisualInstruction(brief, *acc.script)
	case domain.SectionAudioPlan:
		return composeAudioInstruction(brief, *acc.script)
	case domain.SectionResearch:
		return composeResearchInstruction(brief, *acc.concept, profiles)
	case domain.SectionWorkflow:
		return composeWorkflowInstruction(brief, *acc.script)
	}
	panic(fmt.Sprintf("unknown section kind %q", kind))
}

// add validates raw output and appends the typed section. The generation
// order guarantees the script exists before the visual plan's
// cross-reference check runs.
func (acc *sections) add(kind domain.SectionKind, raw []byte) error {
	switch kind {
	case domain.SectionCoreConcept:
		concept, err := schema.DecodeCoreConcept(raw)
		if err != nil {
			return err
		}
		acc.concept = &concept
	case domain.SectionScript:
		script, err := schema.DecodeScript(raw)
		if err != nil {
			return err
		}
		acc.script = &script
	case domain.SectionVisualPlan:
		visual, err := schema.DecodeVisualPlan(raw, acc.script.SegmentNames())
		if err != nil {
			return err
		}
		acc.visual = &visual
	case domain.SectionAudioPlan:
		audio, err := schema.DecodeAudioPlan(raw)
		if err != nil {
			return err
		}
		acc.audio = &audio
	case domain.SectionResearch:
		research, err := schema.DecodeResearch(raw)
		if err != nil {
			return err
		}
		acc.research = &research
	case domain.SectionWorkflow:
		workflow, err := schema.DecodeWorkflow(raw)
		if err != nil {
			return err
		}
		acc.workflow = &workflow
	default:
		panic(fmt.Sprintf("unknown section kind %q", kind))
	}
	return nil
}
