package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/interviewninja/backend/internal/ai"
)

// Analysis is structured feedback on a finished (or ongoing) interview.
type Analysis struct {
	OverallScore        int      `json:"overall_score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	DetailedFeedback    string   `json:"detailed_feedback"`
	Recommendations     []string `json:"recommendations"`
}

// ErrNoTurns means there is nothing to analyze.
var ErrNoTurns = errors.New("no turns to analyze")

// Transcript renders turns as a speaker-labelled plain-text transcript.
func Transcript(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := "Candidate"
		if t.Speaker == SpeakerInterviewer {
			label = "Interviewer"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}

const analysisSystemPrompt = "You are an expert interview coach providing detailed feedback on interview performance. Always respond with valid JSON."

func analysisPrompt(category Category, transcript string) string {
	kind := strings.ReplaceAll(string(category), "_", " ")
	return fmt.Sprintf(`Analyze this %s interview transcript and provide detailed feedback.

Transcript:
%s

Provide your analysis in the following JSON format:
{
    "overall_score": <1-10>,
    "strengths": ["strength1", "strength2", ...],
    "areas_for_improvement": ["area1", "area2", ...],
    "detailed_feedback": "Comprehensive paragraph of feedback",
    "recommendations": ["recommendation1", "recommendation2", ...]
}

Be specific and actionable in your feedback. Reference specific moments from the interview.`, kind, transcript)
}

// Analyze asks the provider for structured feedback on a transcript. A reply
// that is not valid JSON degrades to a raw-feedback Analysis instead of
// failing the call.
func Analyze(ctx context.Context, provider ai.Provider, category Category, transcript string) (Analysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return Analysis{}, ErrNoTurns
	}

	reply, err := provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: analysisPrompt(category, transcript)},
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var out Analysis
	if err := json.Unmarshal([]byte(reply), &out); err != nil {
		return Analysis{
			OverallScore:        5,
			Strengths:           []string{"Unable to parse detailed feedback"},
			AreasForImprovement: []string{"Unable to parse detailed feedback"},
			DetailedFeedback:    reply,
			Recommendations:     []string{"Please review the transcript manually"},
		}, nil
	}
	return out, nil
}
