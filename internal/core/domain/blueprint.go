// Package domain holds the pipeline's core types: the creative Brief, the
// Blueprint aggregate and its sections, and the error taxonomy. Sections
// carry no back-references to the Brief or to each other; cross-section
// consistency (scene-to-segment linkage) is a value-equality contract.
package domain

// SectionKind identifies one named part of a Blueprint. The values double
// as the top-level JSON keys of the boundary response.
type SectionKind string

const (
	SectionCoreConcept SectionKind = "coreConcept"
	SectionScript      SectionKind = "script"
	SectionVisualPlan  SectionKind = "visualPlan"
	SectionAudioPlan   SectionKind = "audioPlan"
	SectionResearch    SectionKind = "research"
	SectionWorkflow    SectionKind = "workflow"
)

// SectionOrder returns the generation order. Research is included iff the
// brief asked for it. The order is load-bearing: later sections' prompts
// restate facts from earlier ones, so it must never be reshuffled.
func SectionOrder(includeResearch bool) []SectionKind {
	kinds := []SectionKind{SectionCoreConcept, SectionScript, SectionVisualPlan, SectionAudioPlan}
	if includeResearch {
		kinds = append(kinds, SectionResearch)
	}
	return append(kinds, SectionWorkflow)
}

// ViralIdea is the headline concept of a blueprint.
type ViralIdea struct {
	Title            string   `json:"title"`
	Hook             string   `json:"hook"`
	ViralityTriggers []string `json:"viralityTriggers"`
}

// NarrativePillar is one recurring story angle the channel should lean on.
type NarrativePillar struct {
	Pillar          string `json:"pillar"`
	Description     string `json:"description"`
	PerformanceHook string `json:"performanceHook"`
}

// CoreConcept is the strategy section of a Blueprint.
type CoreConcept struct {
	ViralIdea           ViralIdea         `json:"viralIdea"`
	ChannelMission      string            `json:"channelMission"`
	SignatureAngle      string            `json:"signatureAngle"`
	NarrativePillars    []NarrativePillar `json:"narrativePillars"`
	RecommendedKeywords []string          `json:"recommendedKeywords"`
}

// ScriptSegment is one ordered beat of the script outline. Segment order is
// narratively meaningful: the intro comes before the conclusion.
type ScriptSegment struct {
	Segment         string   `json:"segment"`
	Objective       string   `json:"objective"`
	RetentionDevice string   `json:"retentionDevice"`
	NarrationBeats  []string `json:"narrationBeats"`
	VisualNotes     []string `json:"visualNotes"`
}

// Script is the retention-first script section.
type Script struct {
	LengthEstimateSeconds int             `json:"lengthEstimateSeconds"`
	CTA                   string          `json:"cta"`
	Outline               []ScriptSegment `json:"outline"`
}

// SegmentNames lists the outline's segment names in order.
func (s Script) SegmentNames() []string {
	names := make([]string, 0, len(s.Outline))
	for _, seg := range s.Outline {
		names = append(names, seg.Segment)
	}
	return names
}

// ThumbnailConcept is one candidate thumbnail with its generation prompt.
type ThumbnailConcept struct {
	Headline     string   `json:"headline"`
	Description  string   `json:"description"`
	ColorPalette []string `json:"colorPalette"`
	AIPrompt     string   `json:"aiPrompt"`
}

// SceneDesign holds visual direction for one script segment, keyed by the
// segment's name.
type SceneDesign struct {
	Segment        string   `json:"segment"`
	PrimaryVisuals []string `json:"primaryVisuals"`
	MotionIdeas    []string `json:"motionIdeas"`
	StockPrompts   []string `json:"stockPrompts"`
}

// VisualPlan is the visual direction section.
type VisualPlan struct {
	ThumbnailConcepts []ThumbnailConcept `json:"thumbnailConcepts"`
	SceneDesign       []SceneDesign      `json:"sceneDesign"`
}

// AudioMoment is a labeled point in the video with music and SFX direction.
type AudioMoment struct {
	Moment    string   `json:"moment"`
	MusicMood string   `json:"musicMood"`
	SFXIdeas  []string `json:"sfxIdeas"`
}

// AudioPlan is the sound design section.
type AudioPlan struct {
	VoiceProfile   string        `json:"voiceProfile"`
	PacingGuidance string        `json:"pacingGuidance"`
	AudioMoments   []AudioMoment `json:"audioMoments"`
	AIVoicePrompt  string        `json:"aiVoicePrompt"`
}

// KeyInsight is one evidence-backed research finding.
type KeyInsight struct {
	Insight  string `json:"insight"`
	Evidence string `json:"evidence"`
	Source   string `json:"source"`
}

// CompetitorLesson is what a named competitor channel teaches us.
type CompetitorLesson struct {
	Channel   string `json:"channel"`
	Lesson    string `json:"lesson"`
	Reference string `json:"reference,omitempty"`
}

// Research is the competitive intelligence section.
type Research struct {
	Summary             string             `json:"summary"`
	KeyInsights         []KeyInsight       `json:"keyInsights"`
	CompetitorBreakdown []CompetitorLesson `json:"competitorBreakdown"`
	SEOKeywords         []string           `json:"seoKeywords"`
}

// AutomationStep is one tool invocation in the execution workflow.
type AutomationStep struct {
	Tool    string `json:"tool"`
	Purpose string `json:"purpose"`
	Prompt  string `json:"prompt"`
}

// ExecutionTimeline estimates hours per production phase.
type ExecutionTimeline struct {
	PreProduction  float64 `json:"preProduction"`
	Production     float64 `json:"production"`
	PostProduction float64 `json:"postProduction"`
}

// Workflow is the automation/execution section.
type Workflow struct {
	Automations            []AutomationStep  `json:"automations"`
	ExecutionTimelineHours ExecutionTimeline `json:"executionTimelineHours"`
}

// Blueprint is the complete, validated production plan. Research is present
// iff the brief set includeResearch. Once assembled it is never mutated.
type Blueprint struct {
	CoreConcept CoreConcept `json:"coreConcept"`
	Script      Script      `json:"script"`
	VisualPlan  VisualPlan  `json:"visualPlan"`
	AudioPlan   AudioPlan   `json:"audioPlan"`
	Research    *Research   `json:"research,omitempty"`
	Workflow    Workflow    `json:"workflow"`
}

// CompetitorProfile is a resolved competitor channel used to ground the
// research prompt. It never appears in the Blueprint itself.
type CompetitorProfile struct {
	Channel     string
	Description string
	Subscribers uint64
	Videos      uint64
}
