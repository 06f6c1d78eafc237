package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// decodeInto unmarshals raw output into a wire struct, mapping type
// mismatches onto the offending field where the decoder can name it.
func decodeInto(kind domain.SectionKind, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &domain.SchemaError{Kind: kind, Field: typeErr.Field, Reason: err.Error()}
		}
		return &domain.SchemaError{Kind: kind, Reason: fmt.Sprintf("cannot decode output: %v", err)}
	}
	return nil
}

func fail(kind domain.SectionKind, field, reason string) error {
	return &domain.SchemaError{Kind: kind, Field: field, Reason: reason}
}

func requireString(kind domain.SectionKind, field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fail(kind, field, "is missing or empty")
	}
	return trimmed, nil
}

// DecodeCoreConcept validates the strategy section.
func DecodeCoreConcept(raw json.RawMessage) (domain.CoreConcept, error) {
	const kind = domain.SectionCoreConcept
	var wire struct {
		ViralIdea struct {
			Title            string     `json:"title"`
			Hook             string     `json:"hook"`
			ViralityTriggers stringList `json:"viralityTriggers"`
		} `json:"viralIdea"`
		ChannelMission   string `json:"channelMission"`
		SignatureAngle   string `json:"signatureAngle"`
		NarrativePillars []struct {
			Pillar          string `json:"pillar"`
			Description     string `json:"description"`
			PerformanceHook string `json:"performanceHook"`
		} `json:"narrativePillars"`
		RecommendedKeywords stringList `json:"recommendedKeywords"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.CoreConcept{}, err
	}

	var out domain.CoreConcept
	var err error
	if out.ViralIdea.Title, err = requireString(kind, "viralIdea.title", wire.ViralIdea.Title); err != nil {
		return domain.CoreConcept{}, err
	}
	if out.ViralIdea.Hook, err = requireString(kind, "viralIdea.hook", wire.ViralIdea.Hook); err != nil {
		return domain.CoreConcept{}, err
	}
	if len(wire.ViralIdea.ViralityTriggers) == 0 {
		return domain.CoreConcept{}, fail(kind, "viralIdea.viralityTriggers", "must list at least one trigger")
	}
	out.ViralIdea.ViralityTriggers = wire.ViralIdea.ViralityTriggers
	if out.ChannelMission, err = requireString(kind, "channelMission", wire.ChannelMission); err != nil {
		return domain.CoreConcept{}, err
	}
	if out.SignatureAngle, err = requireString(kind, "signatureAngle", wire.SignatureAngle); err != nil {
		return domain.CoreConcept{}, err
	}
	if len(wire.NarrativePillars) == 0 {
		return domain.CoreConcept{}, fail(kind, "narrativePillars", "must list at least one pillar")
	}
	for i, p := range wire.NarrativePillars {
		pillar := domain.NarrativePillar{}
		if pillar.Pillar, err = requireString(kind, fmt.Sprintf("narrativePillars[%d].pillar", i), p.Pillar); err != nil {
			return domain.CoreConcept{}, err
		}
		if pillar.Description, err = requireString(kind, fmt.Sprintf("narrativePillars[%d].description", i), p.Description); err != nil {
			return domain.CoreConcept{}, err
		}
		if pillar.PerformanceHook, err = requireString(kind, fmt.Sprintf("narrativePillars[%d].performanceHook", i), p.PerformanceHook); err != nil {
			return domain.CoreConcept{}, err
		}
		out.NarrativePillars = append(out.NarrativePillars, pillar)
	}
	out.RecommendedKeywords = domain.NormalizeList(wire.RecommendedKeywords)
	return out, nil
}

// DecodeScript validates the script section.
func DecodeScript(raw json.RawMessage) (domain.Script, error) {
	const kind = domain.SectionScript
	var wire struct {
		LengthEstimateSeconds flexInt `json:"lengthEstimateSeconds"`
		CTA                   string  `json:"cta"`
		Outline               []struct {
			Segment         string     `json:"segment"`
			Objective       string     `json:"objective"`
			RetentionDevice string     `json:"retentionDevice"`
			NarrationBeats  stringList `json:"narrationBeats"`
			VisualNotes     stringList `json:"visualNotes"`
		} `json:"outline"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.Script{}, err
	}

	if wire.LengthEstimateSeconds <= 0 {
		return domain.Script{}, fail(kind, "lengthEstimateSeconds", "must be a positive integer")
	}
	out := domain.Script{LengthEstimateSeconds: int(wire.LengthEstimateSeconds)}
	var err error
	if out.CTA, err = requireString(kind, "cta", wire.CTA); err != nil {
		return domain.Script{}, err
	}
	if len(wire.Outline) == 0 {
		return domain.Script{}, fail(kind, "outline", "must contain at least one segment")
	}
	seen := make(map[string]struct{}, len(wire.Outline))
	for i, s := range wire.Outline {
		seg := domain.ScriptSegment{
			NarrationBeats: s.NarrationBeats,
			VisualNotes:    s.VisualNotes,
		}
		if seg.Segment, err = requireString(kind, fmt.Sprintf("outline[%d].segment", i), s.Segment); err != nil {
			return domain.Script{}, err
		}
		if _, dup := seen[seg.Segment]; dup {
			return domain.Script{}, fail(kind, fmt.Sprintf("outline[%d].segment", i), fmt.Sprintf("duplicate segment name %q", seg.Segment))
		}
		seen[seg.Segment] = struct{}{}
		if seg.Objective, err = requireString(kind, fmt.Sprintf("outline[%d].objective", i), s.Objective); err != nil {
			return domain.Script{}, err
		}
		if seg.RetentionDevice, err = requireString(kind, fmt.Sprintf("outline[%d].retentionDevice", i), s.RetentionDevice); err != nil {
			return domain.Script{}, err
		}
		if len(seg.NarrationBeats) == 0 {
			return domain.Script{}, fail(kind, fmt.Sprintf("outline[%d].narrationBeats", i), "must list at least one beat")
		}
		out.Outline = append(out.Outline, seg)
	}
	return out, nil
}

// DecodeVisualPlan validates the visual direction section. segmentNames are
// the accumulated Script segment names; every scene design entry must
// reference one of them.
func DecodeVisualPlan(raw json.RawMessage, segmentNames []string) (domain.VisualPlan, error) {
	const kind = domain.SectionVisualPlan
	var wire struct {
		ThumbnailConcepts []struct {
			Headline     string     `json:"headline"`
			Description  string     `json:"description"`
			ColorPalette stringList `json:"colorPalette"`
			AIPrompt     string     `json:"aiPrompt"`
		} `json:"thumbnailConcepts"`
		SceneDesign []struct {
			Segment        string     `json:"segment"`
			PrimaryVisuals stringList `json:"primaryVisuals"`
			MotionIdeas    stringList `json:"motionIdeas"`
			StockPrompts   stringList `json:"stockPrompts"`
		} `json:"sceneDesign"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.VisualPlan{}, err
	}

	known := make(map[string]struct{}, len(segmentNames))
	for _, name := range segmentNames {
		known[name] = struct{}{}
	}

	var out domain.VisualPlan
	var err error
	if len(wire.ThumbnailConcepts) == 0 {
		return domain.VisualPlan{}, fail(kind, "thumbnailConcepts", "must contain at least one concept")
	}
	for i, t := range wire.ThumbnailConcepts {
		concept := domain.ThumbnailConcept{ColorPalette: t.ColorPalette}
		if concept.Headline, err = requireString(kind, fmt.Sprintf("thumbnailConcepts[%d].headline", i), t.Headline); err != nil {
			return domain.VisualPlan{}, err
		}
		if concept.Description, err = requireString(kind, fmt.Sprintf("thumbnailConcepts[%d].description", i), t.Description); err != nil {
			return domain.VisualPlan{}, err
		}
		if len(concept.ColorPalette) == 0 {
			return domain.VisualPlan{}, fail(kind, fmt.Sprintf("thumbnailConcepts[%d].colorPalette", i), "must list at least one color")
		}
		if concept.AIPrompt, err = requireString(kind, fmt.Sprintf("thumbnailConcepts[%d].aiPrompt", i), t.AIPrompt); err != nil {
			return domain.VisualPlan{}, err
		}
		out.ThumbnailConcepts = append(out.ThumbnailConcepts, concept)
	}
	if len(wire.SceneDesign) == 0 {
		return domain.VisualPlan{}, fail(kind, "sceneDesign", "must contain at least one scene")
	}
	seen := make(map[string]struct{}, len(wire.SceneDesign))
	for i, s := range wire.SceneDesign {
		scene := domain.SceneDesign{
			PrimaryVisuals: s.PrimaryVisuals,
			MotionIdeas:    s.MotionIdeas,
			StockPrompts:   s.StockPrompts,
		}
		if scene.Segment, err = requireString(kind, fmt.Sprintf("sceneDesign[%d].segment", i), s.Segment); err != nil {
			return domain.VisualPlan{}, err
		}
		if _, ok := known[scene.Segment]; !ok {
			return domain.VisualPlan{}, fail(kind, fmt.Sprintf("sceneDesign[%d].segment", i),
				fmt.Sprintf("references unknown script segment %q", scene.Segment))
		}
		if _, dup := seen[scene.Segment]; dup {
			return domain.VisualPlan{}, fail(kind, fmt.Sprintf("sceneDesign[%d].segment", i),
				fmt.Sprintf("duplicate scene for script segment %q", scene.Segment))
		}
		seen[scene.Segment] = struct{}{}
		if len(scene.PrimaryVisuals) == 0 {
			return domain.VisualPlan{}, fail(kind, fmt.Sprintf("sceneDesign[%d].primaryVisuals", i), "must list at least one visual")
		}
		out.SceneDesign = append(out.SceneDesign, scene)
	}
	return out, nil
}

// DecodeAudioPlan validates the sound design section.
func DecodeAudioPlan(raw json.RawMessage) (domain.AudioPlan, error) {
	const kind = domain.SectionAudioPlan
	var wire struct {
		VoiceProfile   string `json:"voiceProfile"`
		PacingGuidance string `json:"pacingGuidance"`
		AudioMoments   []struct {
			Moment    string     `json:"moment"`
			MusicMood string     `json:"musicMood"`
			SFXIdeas  stringList `json:"sfxIdeas"`
		} `json:"audioMoments"`
		AIVoicePrompt string `json:"aiVoicePrompt"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.AudioPlan{}, err
	}

	var out domain.AudioPlan
	var err error
	if out.VoiceProfile, err = requireString(kind, "voiceProfile", wire.VoiceProfile); err != nil {
		return domain.AudioPlan{}, err
	}
	if out.PacingGuidance, err = requireString(kind, "pacingGuidance", wire.PacingGuidance); err != nil {
		return domain.AudioPlan{}, err
	}
	if len(wire.AudioMoments) == 0 {
		return domain.AudioPlan{}, fail(kind, "audioMoments", "must contain at least one moment")
	}
	for i, m := range wire.AudioMoments {
		moment := domain.AudioMoment{SFXIdeas: m.SFXIdeas}
		if moment.Moment, err = requireString(kind, fmt.Sprintf("audioMoments[%d].moment", i), m.Moment); err != nil {
			return domain.AudioPlan{}, err
		}
		if moment.MusicMood, err = requireString(kind, fmt.Sprintf("audioMoments[%d].musicMood", i), m.MusicMood); err != nil {
			return domain.AudioPlan{}, err
		}
		out.AudioMoments = append(out.AudioMoments, moment)
	}
	if out.AIVoicePrompt, err = requireString(kind, "aiVoicePrompt", wire.AIVoicePrompt); err != nil {
		return domain.AudioPlan{}, err
	}
	return out, nil
}

// DecodeResearch validates the competitive research section.
func DecodeResearch(raw json.RawMessage) (domain.Research, error) {
	const kind = domain.SectionResearch
	var wire struct {
		Summary     string `json:"summary"`
		KeyInsights []struct {
			Insight  string `json:"insight"`
			Evidence string `json:"evidence"`
			Source   string `json:"source"`
		} `json:"keyInsights"`
		CompetitorBreakdown []struct {
			Channel   string `json:"channel"`
			Lesson    string `json:"lesson"`
			Reference string `json:"reference"`
		} `json:"competitorBreakdown"`
		SEOKeywords stringList `json:"seoKeywords"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.Research{}, err
	}

	var out domain.Research
	var err error
	if out.Summary, err = requireString(kind, "summary", wire.Summary); err != nil {
		return domain.Research{}, err
	}
	if len(wire.KeyInsights) == 0 {
		return domain.Research{}, fail(kind, "keyInsights", "must contain at least one insight")
	}
	for i, k := range wire.KeyInsights {
		insight := domain.KeyInsight{}
		if insight.Insight, err = requireString(kind, fmt.Sprintf("keyInsights[%d].insight", i), k.Insight); err != nil {
			return domain.Research{}, err
		}
		if insight.Evidence, err = requireString(kind, fmt.Sprintf("keyInsights[%d].evidence", i), k.Evidence); err != nil {
			return domain.Research{}, err
		}
		if insight.Source, err = requireString(kind, fmt.Sprintf("keyInsights[%d].source", i), k.Source); err != nil {
			return domain.Research{}, err
		}
		out.KeyInsights = append(out.KeyInsights, insight)
	}
	// The brief may name no competitors; an empty breakdown is valid.
	for i, c := range wire.CompetitorBreakdown {
		lesson := domain.CompetitorLesson{Reference: strings.TrimSpace(c.Reference)}
		if lesson.Channel, err = requireString(kind, fmt.Sprintf("competitorBreakdown[%d].channel", i), c.Channel); err != nil {
			return domain.Research{}, err
		}
		if lesson.Lesson, err = requireString(kind, fmt.Sprintf("competitorBreakdown[%d].lesson", i), c.Lesson); err != nil {
			return domain.Research{}, err
		}
		out.CompetitorBreakdown = append(out.CompetitorBreakdown, lesson)
	}
	out.SEOKeywords = domain.NormalizeList(wire.SEOKeywords)
	return out, nil
}

// DecodeWorkflow validates the automation/execution section.
func DecodeWorkflow(raw json.RawMessage) (domain.Workflow, error) {
	const kind = domain.SectionWorkflow
	var wire struct {
		Automations []struct {
			Tool    string `json:"tool"`
			Purpose string `json:"purpose"`
			Prompt  string `json:"prompt"`
		} `json:"automations"`
		// Pointer so an absent object is distinguishable from all-zero hours.
		ExecutionTimelineHours *struct {
			PreProduction  flexFloat `json:"preProduction"`
			Production     flexFloat `json:"production"`
			PostProduction flexFloat `json:"postProduction"`
		} `json:"executionTimelineHours"`
	}
	if err := decodeInto(kind, raw, &wire); err != nil {
		return domain.Workflow{}, err
	}

	var out domain.Workflow
	var err error
	if len(wire.Automations) == 0 {
		return domain.Workflow{}, fail(kind, "automations", "must contain at least one step")
	}
	for i, a := range wire.Automations {
		step := domain.AutomationStep{}
		if step.Tool, err = requireString(kind, fmt.Sprintf("automations[%d].tool", i), a.Tool); err != nil {
			return domain.Workflow{}, err
		}
		if step.Purpose, err = requireString(kind, fmt.Sprintf("automations[%d].purpose", i), a.Purpose); err != nil {
			return domain.Workflow{}, err
		}
		if step.Prompt, err = requireString(kind, fmt.Sprintf("automations[%d].prompt", i), a.Prompt); err != nil {
			return domain.Workflow{}, err
		}
		out.Automations = append(out.Automations, step)
	}
	if wire.ExecutionTimelineHours == nil {
		return domain.Workflow{}, fail(kind, "executionTimelineHours", "is missing")
	}
	phases := []struct {
		field string
		value flexFloat
	}{
		{"executionTimelineHours.preProduction", wire.ExecutionTimelineHours.PreProduction},
		{"executionTimelineHours.production", wire.ExecutionTimelineHours.Production},
		{"executionTimelineHours.postProduction", wire.ExecutionTimelineHours.PostProduction},
	}
	for _, p := range phases {
		if p.value < 0 {
			return domain.Workflow{}, fail(kind, p.field, "must not be negative")
		}
	}
	out.ExecutionTimelineHours = domain.ExecutionTimeline{
		PreProduction:  float64(wire.ExecutionTimelineHours.PreProduction),
		Production:     float64(wire.ExecutionTimelineHours.Production),
		PostProduction: float64(wire.ExecutionTimelineHours.PostProduction),
	}
	return out, nil
}
