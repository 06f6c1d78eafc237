package services

import (
	"fmt"
	"strings"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// Instruction building is pure and deterministic: the same brief and the
// same accumulated sections always produce the same text. Each instruction
// spells out the exact JSON keys the validator will enforce, and sections
// after the first restate key facts from earlier ones so the model stays
// consistent with what was already produced.

func briefContext(b domain.Brief) string {
	var sb strings.Builder
	sb.WriteString("VIDEO BRIEF\n")
	fmt.Fprintf(&sb, "Topic: %s\n", b.Topic)
	fmt.Fprintf(&sb, "Target audience: %s\n", b.TargetAudience)
	fmt.Fprintf(&sb, "Content goal: %s\n", b.ContentGoal)
	fmt.Fprintf(&sb, "Tone: %s\n", b.Tone)
	fmt.Fprintf(&sb, "Ideal duration: %s\n", b.Duration)
	fmt.Fprintf(&sb, "Primary platform: %s\n", b.PlatformFocus)
	if b.CallToAction != "" {
		fmt.Fprintf(&sb, "Call to action: %s\n", b.CallToAction)
	}
	if len(b.Keywords) > 0 {
		fmt.Fprintf(&sb, "Target keywords: %s\n", strings.Join(b.Keywords, ", "))
	}
	if len(b.Competitors) > 0 {
		fmt.Fprintf(&sb, "Competitor channels: %s\n", strings.Join(b.Competitors, ", "))
	}
	return sb.String()
}

func composeConceptInstruction(b domain.Brief) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nDesign the core concept for this video.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	sb.WriteString(`- "viralIdea": object with "title" (string), "hook" (string), "viralityTriggers" (list of 3-5 strings)` + "\n")
	sb.WriteString(`- "channelMission" (string)` + "\n")
	sb.WriteString(`- "signatureAngle" (string, the angle that sets this channel apart)` + "\n")
	sb.WriteString(`- "narrativePillars": list of 3-4 objects with "pillar", "description", "performanceHook" (all strings)` + "\n")
	sb.WriteString(`- "recommendedKeywords": list of strings` + "\n")
	fmt.Fprintf(&sb, "Match the requested tone (%s) throughout.\n", b.Tone)
	return sb.String()
}

func composeScriptInstruction(b domain.Brief, concept domain.CoreConcept) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nALREADY DECIDED\n")
	fmt.Fprintf(&sb, "Viral idea: %s\n", concept.ViralIdea.Title)
	fmt.Fprintf(&sb, "Hook: %s\n", concept.ViralIdea.Hook)
	fmt.Fprintf(&sb, "Signature angle: %s\n", concept.SignatureAngle)
	sb.WriteString("\nWrite a retention-first script outline that delivers this idea.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	fmt.Fprintf(&sb, `- "lengthEstimateSeconds": positive integer matching the ideal duration (%s)`+"\n", b.Duration)
	sb.WriteString(`- "cta": string (the closing call to action)` + "\n")
	sb.WriteString(`- "outline": ordered list of 4-7 segment objects, intro first and conclusion last, each with "segment" (unique name), "objective", "retentionDevice", "narrationBeats" (list of strings), "visualNotes" (list of strings)` + "\n")
	if b.CallToAction != "" {
		fmt.Fprintf(&sb, "The cta must deliver: %s\n", b.CallToAction)
	}
	return sb.String()
}

func composeVisualInstruction(b domain.Brief, script domain.Script) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nSCRIPT SEGMENTS (use these exact names)\n")
	for _, name := range script.SegmentNames() {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	sb.WriteString("\nDesign the visual direction for this script.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	sb.WriteString(`- "thumbnailConcepts": list of 2-3 objects with "headline", "description", "colorPalette" (list of strings), "aiPrompt" (single image-generation prompt string)` + "\n")
	sb.WriteString(`- "sceneDesign": one object per script segment, each with "segment" (must exactly match a segment name above), "primaryVisuals" (list of strings), "motionIdeas" (list of strings), "stockPrompts" (list of strings)` + "\n")
	return sb.String()
}

func composeAudioInstruction(b domain.Brief, script domain.Script) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nSCRIPT SEGMENTS\n")
	for _, name := range script.SegmentNames() {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	sb.WriteString("\nDesign the voice, music and SFX plan for this script.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	fmt.Fprintf(&sb, `- "voiceProfile": string describing the narrator voice for a %s tone`+"\n", b.Tone)
	sb.WriteString(`- "pacingGuidance": string` + "\n")
	sb.WriteString(`- "audioMoments": ordered list of objects with "moment" (label tied to a script segment), "musicMood", "sfxIdeas" (list of strings)` + "\n")
	sb.WriteString(`- "aiVoicePrompt": single voice-generation prompt string` + "\n")
	return sb.String()
}

func composeResearchInstruction(b domain.Brief, concept domain.CoreConcept, profiles []domain.CompetitorProfile) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nALREADY DECIDED\n")
	fmt.Fprintf(&sb, "Viral idea: %s\n", concept.ViralIdea.Title)
	if len(profiles) > 0 {
		sb.WriteString("\nLIVE COMPETITOR DATA (ground the breakdown in these numbers)\n")
		for _, p := range profiles {
			fmt.Fprintf(&sb, "- %s: %d subscribers, %d videos. %s\n", p.Channel, p.Subscribers, p.Videos, p.Description)
		}
	}
	sb.WriteString("\nCompile competitive research for this video.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	sb.WriteString(`- "summary": string` + "\n")
	sb.WriteString(`- "keyInsights": list of 3-5 objects with "insight", "evidence", "source" (all strings)` + "\n")
	sb.WriteString(`- "competitorBreakdown": one object per competitor channel with "channel", "lesson", optional "reference"` + "\n")
	sb.WriteString(`- "seoKeywords": list of strings` + "\n")
	return sb.String()
}

func composeWorkflowInstruction(b domain.Brief, script domain.Script) string {
	var sb strings.Builder
	sb.WriteString(briefContext(b))
	sb.WriteString("\nSCRIPT SEGMENTS\n")
	for _, name := range script.SegmentNames() {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	fmt.Fprintf(&sb, "\nEstimated runtime: %d seconds\n", script.LengthEstimateSeconds)
	sb.WriteString("\nPlan the automation workflow to produce this video end to end.\n")
	sb.WriteString("Respond with a JSON object with exactly these keys:\n")
	sb.WriteString(`- "automations": ordered list of objects with "tool" (a real AI/automation tool), "purpose", "prompt" (a ready-to-paste prompt for that tool)` + "\n")
	sb.WriteString(`- "executionTimelineHours": object with "preProduction", "production", "postProduction" (non-negative numbers, hours)` + "\n")
	return sb.String()
}
