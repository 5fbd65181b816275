package interview

import (
	"fmt"
	"strings"
)

// Base directives describing the interviewer persona per category.
var basePrompts = map[Category]string{
	SystemDesign: `You are an experienced ML/AI system design interviewer.
Your role is to guide candidates through system design problems for machine learning systems.
Focus on: scalability, data pipelines, model serving, monitoring, and trade-offs.
Ask probing questions about their design choices and help them think through edge cases.
The candidate may be drawing on a canvas - reference their diagrams when appropriate.`,

	LiveCoding: `You are an experienced coding interviewer for ML/AI positions.
Your role is to present coding problems and guide candidates through solving them.
Focus on: algorithm efficiency, code quality, ML-specific implementations (data preprocessing,
model evaluation, feature engineering).
Provide hints when stuck, but let them drive the solution.
The candidate is writing code in an editor - reference their code when appropriate.`,

	MLTheory: `You are an expert ML/AI interviewer testing theoretical knowledge.
Your role is to ask questions about machine learning concepts, deep learning, statistics,
and AI fundamentals.
Cover topics like: gradient descent, regularization, bias-variance tradeoff, neural network
architectures, transformers, attention mechanisms, loss functions, optimization.
The candidate may write formulas - acknowledge and discuss their mathematical notation.`,

	Coaching: `You are a supportive ML/AI career coach.
Your role is to help candidates prepare for their interviews, provide advice on career development,
discuss salary negotiations, review their experience, and build their confidence.
Be encouraging but honest. Help them articulate their experiences effectively.`,
}

var toneDirectives = map[Tone]string{
	Friendly:    "Be warm, encouraging, and supportive. Use positive reinforcement frequently.",
	Neutral:     "Be professional and balanced. Provide objective feedback without being too warm or cold.",
	Adversarial: "Be challenging and push back on answers. Play devil's advocate. Test their conviction and ability to defend their choices under pressure.",
}

var verbosityDirectives = map[Verbosity]string{
	VerbosityLow:    "Keep responses brief and to the point. Ask one question at a time. Minimal explanation.",
	VerbosityMedium: "Provide moderate detail in responses. Balance between brevity and thoroughness.",
	VerbosityHigh:   "Provide detailed explanations and context. Elaborate on concepts when relevant.",
}

// Compose builds the full system instruction for a session's settings.
// The tables above are compile-time constants, so a missing entry is a
// programming defect and panics.
func Compose(category Category, tone Tone, verbosity Verbosity, topic string) string {
	base, ok := basePrompts[category]
	if !ok {
		panic(fmt.Sprintf("interview: no base prompt for category %q", category))
	}
	toneMod, ok := toneDirectives[tone]
	if !ok {
		panic(fmt.Sprintf("interview: no tone directive for %q", tone))
	}
	verbMod, ok := verbosityDirectives[verbosity]
	if !ok {
		panic(fmt.Sprintf("interview: no verbosity directive for %q", verbosity))
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nCommunication Style:\n")
	b.WriteString(toneMod)
	b.WriteString("\n")
	b.WriteString(verbMod)
	b.WriteString("\n\nImportant: You are simulating a real interview. Stay in character throughout.")

	if topic = strings.TrimSpace(topic); topic != "" {
		b.WriteString("\n\nThe interview problem/topic is:\n")
		b.WriteString(topic)
	}
	return b.String()
}

var openings = map[Category]string{
	SystemDesign: "Hello! I'm excited to work through a system design problem with you today. We'll be designing %s. Before we dive in, could you tell me a bit about your experience with ML system design?",
	LiveCoding:   "Hi there! Today we're going to work through a coding problem together. %s. Feel free to think out loud as you work through it. Ready to see the problem?",
	MLTheory:     "Welcome! Today we'll explore some machine learning concepts together. %s. Let's start with a foundational question to warm up.",
	Coaching:     "Hi! I'm here to help you prepare for your ML interviews and career journey. %s. What aspects of your interview preparation would you like to focus on today?",
}

// Tone transforms applied to the templated greeting. Each entry is a pure
// greeting -> greeting function so tone adjustment never depends on fragile
// ad hoc string matching at call sites.
var greetingTransforms = map[Tone]func(string) string{
	Friendly: func(s string) string { return "Great to meet you! " + s },
	Neutral:  func(s string) string { return s },
	Adversarial: func(s string) string {
		s = strings.ReplaceAll(s, "I'm excited to", "I'm ready to")
		s = strings.ReplaceAll(s, "Hi there! ", "")
		s = strings.ReplaceAll(s, "Hello! ", "")
		s = strings.ReplaceAll(s, "Welcome! ", "")
		s = strings.ReplaceAll(s, "Hi! ", "")
		return s
	},
}

const topicRefMaxLen = 100

// topicRef reduces a topic to a short reference for the greeting: its first
// line, length-cut at 100 characters.
func topicRef(topic string) string {
	line := topic
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > topicRefMaxLen {
		line = line[:topicRefMaxLen]
	}
	return line
}

// Opening produces the category-specific greeting, with a short topic
// reference when a topic is set and the tone transform applied last.
func Opening(category Category, tone Tone, topic string) string {
	tmpl, ok := openings[category]
	if !ok {
		panic(fmt.Sprintf("interview: no opening template for category %q", category))
	}

	topicText := "I'll present the topic shortly"
	if t := strings.TrimSpace(topic); t != "" {
		topicText = "The topic is: " + topicRef(t)
	}
	greeting := fmt.Sprintf(tmpl, topicText)

	transform, ok := greetingTransforms[tone]
	if !ok {
		panic(fmt.Sprintf("interview: no greeting transform for tone %q", tone))
	}
	return transform(greeting)
}
