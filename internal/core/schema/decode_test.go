package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/voxline-studio/backend/internal/core/domain"
)

func schemaErr(t *testing.T, err error) *domain.SchemaError {
	t.Helper()
	var sErr *domain.SchemaError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	return sErr
}

func TestDecodeCoreConcept(t *testing.T) {
	valid := `{
		"viralIdea": {"title": "The 10x Creator", "hook": "You are wasting 30 hours a week", "viralityTriggers": ["curiosity gap", "loss aversion"]},
		"channelMission": "Help creators automate",
		"signatureAngle": "Data-backed automation",
		"narrativePillars": [{"pillar": "Speed", "description": "Ship faster", "performanceHook": "before/after cuts"}],
		"recommendedKeywords": ["AI", "ai", " automation "]
	}`

	concept, err := DecodeCoreConcept([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concept.ViralIdea.Title != "The 10x Creator" {
		t.Errorf("title: got %q", concept.ViralIdea.Title)
	}
	if want := []string{"ai", "automation"}; !reflect.DeepEqual(concept.RecommendedKeywords, want) {
		t.Errorf("keywords not deduped: got %v, want %v", concept.RecommendedKeywords, want)
	}

	t.Run("bare string coerced to one-element list", func(t *testing.T) {
		raw := `{
			"viralIdea": {"title": "T", "hook": "H", "viralityTriggers": "curiosity gap"},
			"channelMission": "M", "signatureAngle": "A",
			"narrativePillars": [{"pillar": "P", "description": "D", "performanceHook": "PH"}],
			"recommendedKeywords": []
		}`
		concept, err := DecodeCoreConcept([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"curiosity gap"}; !reflect.DeepEqual(concept.ViralIdea.ViralityTriggers, want) {
			t.Errorf("triggers: got %v, want %v", concept.ViralIdea.ViralityTriggers, want)
		}
	})

	t.Run("missing hook", func(t *testing.T) {
		raw := `{
			"viralIdea": {"title": "T", "viralityTriggers": ["x"]},
			"channelMission": "M", "signatureAngle": "A",
			"narrativePillars": [{"pillar": "P", "description": "D", "performanceHook": "PH"}]
		}`
		_, err := DecodeCoreConcept([]byte(raw))
		if got := schemaErr(t, err); got.Field != "viralIdea.hook" {
			t.Errorf("field: got %q, want viralIdea.hook", got.Field)
		}
	})

	t.Run("no pillars", func(t *testing.T) {
		raw := `{
			"viralIdea": {"title": "T", "hook": "H", "viralityTriggers": ["x"]},
			"channelMission": "M", "signatureAngle": "A",
			"narrativePillars": []
		}`
		_, err := DecodeCoreConcept([]byte(raw))
		if got := schemaErr(t, err); got.Field != "narrativePillars" {
			t.Errorf("field: got %q, want narrativePillars", got.Field)
		}
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := DecodeCoreConcept([]byte("here is your concept!"))
		if got := schemaErr(t, err); got.Kind != domain.SectionCoreConcept {
			t.Errorf("kind: got %q", got.Kind)
		}
	})
}

func TestDecodeScript(t *testing.T) {
	valid := `{
		"lengthEstimateSeconds": 480,
		"cta": "Subscribe and grab the toolkit",
		"outline": [
			{"segment": "Cold Open", "objective": "Hook", "retentionDevice": "open loop", "narrationBeats": ["shock stat"], "visualNotes": ["fast cuts"]},
			{"segment": "Conclusion", "objective": "Close", "retentionDevice": "payoff", "narrationBeats": ["recap"], "visualNotes": []}
		]
	}`

	script, err := DecodeScript([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.LengthEstimateSeconds != 480 {
		t.Errorf("length: got %d", script.LengthEstimateSeconds)
	}
	if want := []string{"Cold Open", "Conclusion"}; !reflect.DeepEqual(script.SegmentNames(), want) {
		t.Errorf("segments: got %v, want %v", script.SegmentNames(), want)
	}

	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "zero length",
			raw:       `{"lengthEstimateSeconds": 0, "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": ["b"]}]}`,
			wantField: "lengthEstimateSeconds",
		},
		{
			name:      "negative length",
			raw:       `{"lengthEstimateSeconds": -10, "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": ["b"]}]}`,
			wantField: "lengthEstimateSeconds",
		},
		{
			name:      "empty outline",
			raw:       `{"lengthEstimateSeconds": 480, "cta": "c", "outline": []}`,
			wantField: "outline",
		},
		{
			name:      "duplicate segment names",
			raw:       `{"lengthEstimateSeconds": 480, "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": ["b"]}, {"segment": "S", "objective": "O2", "retentionDevice": "R2", "narrationBeats": ["b2"]}]}`,
			wantField: "outline[1].segment",
		},
		{
			name:      "segment without beats",
			raw:       `{"lengthEstimateSeconds": 480, "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": []}]}`,
			wantField: "outline[0].narrationBeats",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeScript([]byte(tc.raw))
			if got := schemaErr(t, err); got.Field != tc.wantField {
				t.Errorf("field: got %q, want %q", got.Field, tc.wantField)
			}
		})
	}

	t.Run("fractional length rejected", func(t *testing.T) {
		raw := `{"lengthEstimateSeconds": 480.5, "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": ["b"]}]}`
		_, err := DecodeScript([]byte(raw))
		got := schemaErr(t, err)
		if got.Kind != domain.SectionScript {
			t.Errorf("kind: got %q", got.Kind)
		}
		if !strings.Contains(got.Reason, "integer") {
			t.Errorf("reason: got %q", got.Reason)
		}
		// The payload is valid JSON with a mistyped value; the diagnostic
		// must not claim otherwise.
		if strings.Contains(got.Reason, "not valid JSON") {
			t.Errorf("reason misreports mistyped value as invalid JSON: %q", got.Reason)
		}
	})

	t.Run("numeric string coerced", func(t *testing.T) {
		raw := `{"lengthEstimateSeconds": "480", "cta": "c", "outline": [{"segment": "S", "objective": "O", "retentionDevice": "R", "narrationBeats": ["b"]}]}`
		script, err := DecodeScript([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if script.LengthEstimateSeconds != 480 {
			t.Errorf("length: got %d", script.LengthEstimateSeconds)
		}
	})
}

func TestDecodeVisualPlan(t *testing.T) {
	segments := []string{"Cold Open", "Conclusion"}
	valid := `{
		"thumbnailConcepts": [{"headline": "10x OR BUST", "description": "Split face", "colorPalette": ["emerald", "slate"], "aiPrompt": "close-up portrait"}],
		"sceneDesign": [
			{"segment": "Cold Open", "primaryVisuals": ["screen recording"], "motionIdeas": ["whip pan"], "stockPrompts": ["typing hands"]},
			{"segment": "Conclusion", "primaryVisuals": ["talking head"], "motionIdeas": [], "stockPrompts": []}
		]
	}`

	plan, err := DecodeVisualPlan([]byte(valid), segments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.SceneDesign) != 2 {
		t.Fatalf("scene count: got %d", len(plan.SceneDesign))
	}

	t.Run("unknown segment rejected", func(t *testing.T) {
		raw := `{
			"thumbnailConcepts": [{"headline": "H", "description": "D", "colorPalette": ["c"], "aiPrompt": "p"}],
			"sceneDesign": [{"segment": "Montage", "primaryVisuals": ["x"], "motionIdeas": [], "stockPrompts": []}]
		}`
		_, err := DecodeVisualPlan([]byte(raw), segments)
		got := schemaErr(t, err)
		if got.Field != "sceneDesign[0].segment" {
			t.Errorf("field: got %q", got.Field)
		}
	})

	t.Run("duplicate scene for one segment rejected", func(t *testing.T) {
		raw := `{
			"thumbnailConcepts": [{"headline": "H", "description": "D", "colorPalette": ["c"], "aiPrompt": "p"}],
			"sceneDesign": [
				{"segment": "Cold Open", "primaryVisuals": ["x"], "motionIdeas": [], "stockPrompts": []},
				{"segment": "Cold Open", "primaryVisuals": ["y"], "motionIdeas": [], "stockPrompts": []}
			]
		}`
		_, err := DecodeVisualPlan([]byte(raw), segments)
		got := schemaErr(t, err)
		if got.Field != "sceneDesign[1].segment" {
			t.Errorf("field: got %q", got.Field)
		}
		if !strings.Contains(got.Reason, "duplicate") {
			t.Errorf("reason: got %q", got.Reason)
		}
	})

	t.Run("no thumbnails", func(t *testing.T) {
		raw := `{"thumbnailConcepts": [], "sceneDesign": [{"segment": "Cold Open", "primaryVisuals": ["x"]}]}`
		_, err := DecodeVisualPlan([]byte(raw), segments)
		if got := schemaErr(t, err); got.Field != "thumbnailConcepts" {
			t.Errorf("field: got %q", got.Field)
		}
	})
}

func TestDecodeAudioPlan(t *testing.T) {
	valid := `{
		"voiceProfile": "Warm, fast-paced narrator",
		"pacingGuidance": "Accelerate into reveals",
		"audioMoments": [{"moment": "Cold Open", "musicMood": "tense synth", "sfxIdeas": ["whoosh", "keyboard clack"]}],
		"aiVoicePrompt": "Energetic US English voice"
	}`
	plan, err := DecodeAudioPlan([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.AudioMoments) != 1 || plan.AudioMoments[0].MusicMood != "tense synth" {
		t.Errorf("moments: got %+v", plan.AudioMoments)
	}

	t.Run("missing voice profile", func(t *testing.T) {
		raw := `{"pacingGuidance": "p", "audioMoments": [{"moment": "m", "musicMood": "mm"}], "aiVoicePrompt": "v"}`
		_, err := DecodeAudioPlan([]byte(raw))
		if got := schemaErr(t, err); got.Field != "voiceProfile" {
			t.Errorf("field: got %q", got.Field)
		}
	})
}

func TestDecodeResearch(t *testing.T) {
	valid := `{
		"summary": "The niche rewards tactical specificity",
		"keyInsights": [{"insight": "Lists outperform", "evidence": "Top 10 of 12 results are listicles", "source": "YouTube search"}],
		"competitorBreakdown": [{"channel": "Ali Abdaal", "lesson": "Personal framing wins"}, {"channel": "Think Media", "lesson": "Gear hooks", "reference": "https://example.com"}],
		"seoKeywords": ["AI", "ai workflow"]
	}`
	research, err := DecodeResearch([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if research.CompetitorBreakdown[0].Reference != "" {
		t.Errorf("reference should be optional, got %q", research.CompetitorBreakdown[0].Reference)
	}
	if research.CompetitorBreakdown[1].Reference == "" {
		t.Errorf("reference dropped")
	}
	if want := []string{"ai", "ai workflow"}; !reflect.DeepEqual(research.SEOKeywords, want) {
		t.Errorf("seoKeywords: got %v, want %v", research.SEOKeywords, want)
	}

	t.Run("empty competitor breakdown is valid", func(t *testing.T) {
		raw := `{"summary": "s", "keyInsights": [{"insight": "i", "evidence": "e", "source": "src"}], "competitorBreakdown": [], "seoKeywords": []}`
		if _, err := DecodeResearch([]byte(raw)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no insights", func(t *testing.T) {
		raw := `{"summary": "s", "keyInsights": [], "competitorBreakdown": [], "seoKeywords": []}`
		_, err := DecodeResearch([]byte(raw))
		if got := schemaErr(t, err); got.Field != "keyInsights" {
			t.Errorf("field: got %q", got.Field)
		}
	})
}

func TestDecodeWorkflow(t *testing.T) {
	valid := `{
		"automations": [{"tool": "ElevenLabs", "purpose": "Narration", "prompt": "Generate narration"}],
		"executionTimelineHours": {"preProduction": 2, "production": 4.5, "postProduction": "3"}
	}`
	workflow, err := DecodeWorkflow([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if workflow.ExecutionTimelineHours.PostProduction != 3 {
		t.Errorf("numeric string not coerced: got %v", workflow.ExecutionTimelineHours.PostProduction)
	}

	t.Run("timeline object missing entirely", func(t *testing.T) {
		raw := `{"automations": [{"tool": "t", "purpose": "p", "prompt": "pr"}]}`
		_, err := DecodeWorkflow([]byte(raw))
		got := schemaErr(t, err)
		if got.Field != "executionTimelineHours" {
			t.Errorf("field: got %q", got.Field)
		}
		if !strings.Contains(got.Reason, "missing") {
			t.Errorf("reason: got %q", got.Reason)
		}
	})

	t.Run("negative hours", func(t *testing.T) {
		raw := `{"automations": [{"tool": "t", "purpose": "p", "prompt": "pr"}], "executionTimelineHours": {"preProduction": -1, "production": 0, "postProduction": 0}}`
		_, err := DecodeWorkflow([]byte(raw))
		if got := schemaErr(t, err); got.Field != "executionTimelineHours.preProduction" {
			t.Errorf("field: got %q", got.Field)
		}
	})

	t.Run("zero hours allowed", func(t *testing.T) {
		raw := `{"automations": [{"tool": "t", "purpose": "p", "prompt": "pr"}], "executionTimelineHours": {"preProduction": 0, "production": 0, "postProduction": 0}}`
		if _, err := DecodeWorkflow([]byte(raw)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no automations", func(t *testing.T) {
		raw := `{"automations": [], "executionTimelineHours": {"preProduction": 1, "production": 1, "postProduction": 1}}`
		_, err := DecodeWorkflow([]byte(raw))
		if got := schemaErr(t, err); got.Field != "automations" {
			t.Errorf("field: got %q", got.Field)
		}
	})
}
