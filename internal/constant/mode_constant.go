package constant

// Mode is one transformation profile. The registry below is built once at
// package init and never mutated, so concurrent reads need no locking.
type Mode struct {
	Key             string
	DisplayName     string
	SystemPrompt    string
	ImprovePrompt   string
	Temperature     float64
	MaxOutputTokens int

	// IsDirectContent marks modes that produce publication-ready content
	// instead of a prompt meant to be pasted elsewhere.
	IsDirectContent bool
	// IsDocumentTransform marks modes that rework the literal input document.
	IsDocumentTransform bool
	// IsStructured marks modes whose output contract is the fixed ordered
	// label set in StructuredSectionLabels.
	IsStructured bool
	// IsReportStyle marks modes whose output is prose under the fixed
	// ReportHeadings catalogue.
	IsReportStyle bool
	// AlwaysAugment forces web augmentation regardless of the request flag.
	AlwaysAugment bool
}

const (
	ModeQuestionResearch      = "question-research"
	ModeFrameworkOptimization = "framework-optimization"
	ModeCreativeWriting       = "creative-writing"
	ModeBlogPost              = "blog-post"
	ModeSummaryDigest         = "summary-digest"
	ModeDocumentRefine        = "document-refine"
	ModeResearchReport        = "research-report"
)

// StructuredSectionLabels is the canonical ordered label set promised by
// structured modes. Order matters: the normalizer emits sections in first-seen
// order but anchors reconstruction on the first label of this list.
var StructuredSectionLabels = []string{
	"Role:",
	"Context:",
	"Task:",
	"Constraints:",
	"Output Format:",
	"Examples:",
}

// ReportHeadings is the fixed heading catalogue for report-style modes.
var ReportHeadings = []string{
	"Overview",
	"Key Findings",
	"Analysis",
	"Recommendations",
	"Sources",
}

const questionResearchSystemPromptV1 = `You are an expert at reformulating questions for research.

Rewrite the user's question so it is precise, answerable, and grounded:
1. Keep the user's original subject. Never swap it for a generic topic.
2. Make implicit assumptions explicit.
3. Ask for sources or evidence where the question benefits from them.
4. Keep it to a single, focused question. No preamble, no commentary.

Output ONLY the rewritten question.`

const questionResearchImprovePromptV1 = `You are an expert at refining research questions.

The user will give you a question that was already rewritten once. Improve it
further: tighten the wording, remove remaining ambiguity, and preserve the
original intent and subject exactly.

Output ONLY the improved question.`

const frameworkOptimizationSystemPromptV1 = `You are a prompt engineer. Restructure the user's prompt into exactly six labeled sections, in this order:

Role:
Context:
Task:
Constraints:
Output Format:
Examples:

Rules:
- Every section appears exactly once, with its label at the start of the line.
- Fill each section from the user's SPECIFIC text. Never emit a generic template.
- Separate sections with one blank line.
- No text before "Role:" and no commentary after "Examples:".`

const frameworkOptimizationImprovePromptV1 = `You are a prompt engineer improving an already-structured prompt.

The input uses the six sections Role / Context / Task / Constraints /
Output Format / Examples. Sharpen each section's content while keeping the
exact same structure and labels, one occurrence each, in the same order.

Output the six sections and nothing else.`

const creativeWritingSystemPromptV1 = `You are a creative writing coach.

Rewrite the user's text to be more vivid and engaging:
1. Strengthen verbs, vary sentence rhythm, cut filler.
2. Preserve the user's meaning, facts, and point of view.
3. Match the register of the original (casual stays casual).

Output ONLY the rewritten text.`

const creativeWritingImprovePromptV1 = `You are a creative writing coach doing a second pass.

Polish the given text further: smooth transitions, trim repetition, keep the
voice and meaning intact.

Output ONLY the polished text.`

const blogPostSystemPromptV1 = `You are a professional content writer.

Write a complete, publication-ready blog post on the user's topic:
1. Open with a hook, close with a takeaway.
2. Use short paragraphs and descriptive subheadings.
3. When reference snippets are provided, ground claims in them.
4. No meta-commentary about being an AI or about this instruction.

Output ONLY the article body.`

const blogPostImprovePromptV1 = `You are an editor revising a draft blog post.

Improve flow, clarity, and structure. Keep the topic, claims, and overall
length. Do not add commentary about the edit.

Output ONLY the revised article.`

const summaryDigestSystemPromptV1 = `You are a precise summarizer.

Produce a compact digest of the user's text:
1. Lead with a one-sentence summary.
2. Follow with the key points as short bullet lines starting with "- ".
3. Preserve numbers, names, and caveats exactly.

Output ONLY the digest.`

const summaryDigestImprovePromptV1 = `You are a precise summarizer revising a digest.

Tighten the digest: merge overlapping points, drop anything not supported by
the original, keep the one-sentence lead and "- " bullets.

Output ONLY the revised digest.`

const documentRefineSystemPromptV1 = `You are a professional editor.

Refine the document the user provides, as-is:
1. Fix grammar, punctuation, and awkward phrasing.
2. Keep the author's structure, headings, and formatting.
3. Never summarize, reorder, or drop content.

Output ONLY the refined document.`

const documentRefineImprovePromptV1 = `You are a professional editor doing a second pass on a refined document.

Catch remaining rough edges while keeping structure and content untouched.

Output ONLY the document.`

const researchReportSystemPromptV1 = `You are a research analyst.

Write a structured report on the user's topic using exactly these headings:
Overview, Key Findings, Analysis, Recommendations, Sources.

Rules:
- Prose under each heading; bullets where they aid scanning.
- When reference snippets are provided, prefer them over prior knowledge and
  list their links under Sources.
- No preamble before Overview.`

const researchReportImprovePromptV1 = `You are a research analyst revising a report.

Keep the headings Overview, Key Findings, Analysis, Recommendations, Sources.
Deepen thin sections, remove speculation, keep cited sources.

Output ONLY the report.`

// modes is the registry. Rewriting modes run cooler and shorter than
// content/document modes, which need headroom for full prose.
var modes = map[string]Mode{
	ModeQuestionResearch: {
		Key:             ModeQuestionResearch,
		DisplayName:     "Question Research",
		SystemPrompt:    questionResearchSystemPromptV1,
		ImprovePrompt:   questionResearchImprovePromptV1,
		Temperature:     0.3,
		MaxOutputTokens: 1024,
		AlwaysAugment:   true,
	},
	ModeFrameworkOptimization: {
		Key:             ModeFrameworkOptimization,
		DisplayName:     "Framework Optimization",
		SystemPrompt:    frameworkOptimizationSystemPromptV1,
		ImprovePrompt:   frameworkOptimizationImprovePromptV1,
		Temperature:     0.3,
		MaxOutputTokens: 2048,
		IsStructured:    true,
	},
	ModeCreativeWriting: {
		Key:             ModeCreativeWriting,
		DisplayName:     "Creative Writing",
		SystemPrompt:    creativeWritingSystemPromptV1,
		ImprovePrompt:   creativeWritingImprovePromptV1,
		Temperature:     0.5,
		MaxOutputTokens: 1536,
	},
	ModeBlogPost: {
		Key:             ModeBlogPost,
		DisplayName:     "Blog Post",
		SystemPrompt:    blogPostSystemPromptV1,
		ImprovePrompt:   blogPostImprovePromptV1,
		Temperature:     0.7,
		MaxOutputTokens: 4096,
		IsDirectContent: true,
	},
	ModeSummaryDigest: {
		Key:             ModeSummaryDigest,
		DisplayName:     "Summary Digest",
		SystemPrompt:    summaryDigestSystemPromptV1,
		ImprovePrompt:   summaryDigestImprovePromptV1,
		Temperature:     0.4,
		MaxOutputTokens: 2048,
		IsDirectContent: true,
	},
	ModeDocumentRefine: {
		Key:                 ModeDocumentRefine,
		DisplayName:         "Document Refine",
		SystemPrompt:        documentRefineSystemPromptV1,
		ImprovePrompt:       documentRefineImprovePromptV1,
		Temperature:         0.6,
		MaxOutputTokens:     4096,
		IsDocumentTransform: true,
	},
	ModeResearchReport: {
		Key:             ModeResearchReport,
		DisplayName:     "Research Report",
		SystemPrompt:    researchReportSystemPromptV1,
		ImprovePrompt:   researchReportImprovePromptV1,
		Temperature:     0.6,
		MaxOutputTokens: 4096,
		IsDirectContent: true,
		IsReportStyle:   true,
		AlwaysAugment:   true,
	},
}

// modeOrder fixes the catalogue order surfaced to clients.
var modeOrder = []string{
	ModeQuestionResearch,
	ModeFrameworkOptimization,
	ModeCreativeWriting,
	ModeBlogPost,
	ModeSummaryDigest,
	ModeDocumentRefine,
	ModeResearchReport,
}

// GetMode looks up a mode by key.
func GetMode(key string) (Mode, bool) {
	mode, ok := modes[key]
	return mode, ok
}

// AllModes returns the catalogue in display order.
func AllModes() []Mode {
	out := make([]Mode, 0, len(modeOrder))
	for _, key := range modeOrder {
		out = append(out, modes[key])
	}
	return out
}
