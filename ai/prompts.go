package ai

import (
	"fmt"
	"strings"

	"thesis-radar/models"
)

// Prompt builders. The prompt text is the contract with the model and is
// carried over as-is from the product's research playbook; the declared
// response schemas in schemas.go pin down the shapes.

func buildSuggestThesesPrompt(constraints string) string {
	if constraints == "" {
		constraints = "Focus on high-growth areas complementary to Vercel's current stack."
	}
	return fmt.Sprintf(`You are a world-class M&A strategist for Vercel.
Analyze Vercel's core strategic priorities:
1. Frontend Cloud dominance (DX, performance, reliability).
2. Next.js ecosystem expansion.
3. AI SDK and AI-native developer workflows.
4. Edge Computing and globally distributed infrastructure.
5. Enterprise-grade security and compliance for large-scale deployments.

User Strategic Constraints:
%s

Suggest 5 high-impact strategic acquisition theses that Vercel should consider.
CRITICAL: These should be stable, high-level strategic directions, not transient trends.
The relevance scores should reflect long-term strategic value to Vercel's mission to "make the web faster".

For each thesis, provide:
1. Title: A concise, professional name for the thesis.
2. Description: A 2-3 sentence strategic rationale.
3. Relevance Score: 0-100 (how critical this is for Vercel's growth).
4. Rationale: Why this makes sense specifically for Vercel's ecosystem.

Return this as structured JSON.`, constraints)
}

func buildInterpretThesisPrompt(thesis models.Thesis) string {
	return fmt.Sprintf(`You are a senior M&A analyst for Vercel's CorpBD team.
A user has provided a strategic acquisition thesis: "%s: %s"

Analyze this thesis.
CRITICAL: Evaluate relevance to Vercel's ecosystem (Frontend Cloud, Next.js, Edge Computing, DX, AI SDK).
If there is NO direct relevance, be honest. Do not force a connection. Instead, explain why it's outside Vercel's core but suggest what the focus should be if an acquisition were still considered.

Provide:
1. Market Context: A deep dive into the industry landscape. If relevant to Vercel, explain why. If not, explain the disconnect but provide a professional segment analysis.
2. Parameters: Inferred target size range, funding stage, geography, and must-have technologies.
3. Evaluation Signals: A list of 6 specific signals aligned with the "6Ps" framework:
   - People (Team quality, departures, hires)
   - Proposition (Market fit, unique value)
   - Product (Tech quality, community traction)
   - Profit pool (Revenue potential, margins)
   - Pricing (Monetization strategy, competitive pricing)
   - Performance (Growth metrics, stability)

   CRITICAL: Format each signal as "Category: Concise Description" (e.g., "People: Founders with strong tech background").
   The category MUST be one of the 6Ps.
4. Workflow: A structured 3-step agentic workflow.
   Each step must have:
   - title: e.g., "Data Sourcing & Intelligence"
   - logic: A short paragraph explaining the strategic reasoning for this step.
   - tasks: A list of 3-4 specific sub-tasks (e.g., "Fetch latest startups from Pitchbook", "Analyze GitHub activity"). ONLY include tasks that the agent will actually perform.
5. Relevance Score: A number from 0-100.

Return this as structured JSON.`, thesis.Title, thesis.Description)
}

// candidateFieldList is shared by both search prompts: the per-company
// attributes the model must fill in.
const candidateFieldList = `1. Name
2. One-liner (max 15 words)
3. Funding stage
4. Estimated headcount
5. Fit rating (Strong, Moderate, Weak)
6. Signal score (0-100)
7. Top signal: A short, punchy sentence.
8. Current client list overlap: Estimate overlap with Vercel's customer base.
9. Potential client overlap: Estimate future overlap.
10. Product rating: A descriptive rating (e.g., "Best-in-class", "Emerging").
11. Product score: 0-100.
12. Valuation: Estimated current valuation.
13. Funding stage detail: Specific last round info.
14. Current investors: Notable VC/Angel names.`

func buildExecuteSearchPrompt(cal Calibration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior M&A analyst. Based on the following calibrated strategy, identify 15-25 real companies that match.\n\n")
	fmt.Fprintf(&b, "Strategic Alignment: %s\n", cal.MarketContext)
	if cal.RelevanceScore > 30 {
		b.WriteString("Vercel Relevance Context: High priority on Vercel synergy.\n")
	} else {
		b.WriteString("Vercel Relevance Context: General segment search, Vercel synergy is secondary.\n")
	}
	fmt.Fprintf(&b, `
Parameters:
- Size: %s
- Stage: %s
- Geography: %s
- Tech: %s

Evaluation Signals to prioritize:
`, cal.Parameters.SizeRange, cal.Parameters.FundingStage, cal.Parameters.Geography, cal.Parameters.Technologies)
	for _, s := range cal.Signals {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\nAgent Workflow to follow:\n")
	for i, step := range cal.Workflow {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Step: %s\nLogic: %s\nTasks:\n", step.Title, step.Logic)
		for _, task := range step.Tasks {
			fmt.Fprintf(&b, "- %s\n", task)
		}
	}
	fmt.Fprintf(&b, "\nFor each company, provide:\n%s\n\nReturn the list in DESCENDING order of relevance.", candidateFieldList)
	return b.String()
}

func buildGenerateTargetsPrompt(thesis models.Thesis) string {
	return fmt.Sprintf(`You are a senior M&A analyst and corporate development strategist.
Your task is to identify 15-25 real companies that match the following strategic acquisition thesis:

"%s: %s"

Additional constraints:
- Size: %s
- Stage: %s
- Geography: %s
- Tech: %s

For each company, provide:
%s

CRITICAL: If the fit is "Moderate", the top signal must explicitly state the gap (e.g., "Strong tech but lacks enterprise scale" or "Great synergy but high valuation risk").
Be practical, opinionated, and focused on actionable targets.`,
		thesis.Title, thesis.Description,
		anyIfEmpty(thesis.SizeRange), anyIfEmpty(thesis.FundingStage),
		anyIfEmpty(thesis.Geography), anyIfEmpty(thesis.Technologies),
		candidateFieldList)
}

func buildRefreshSignalsPrompt(thesis models.Thesis, targets []models.Target) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are monitoring these companies for a CorpBD team. \nThesis: \"%s: %s\"\n\nCompanies to evaluate:\n", thesis.Title, thesis.Description)
	for _, t := range targets {
		fmt.Fprintf(&b, "- %s (Current Score: %d, Last Signal: %s)\n", t.Name, t.SignalScore, t.TopSignal)
	}
	b.WriteString(`
For each company, generate an updated signal score (0-100) and identify any new timing signals.
Timing signals include: executive departures, layoffs, failed fundraises, competitor acquisitions, product pivots, declining community engagement, or positive counter-signals like large funding rounds.
Be honest about uncertainty.`)
	return b.String()
}

func deepDiveContext(thesis models.Thesis, target models.Target) string {
	return fmt.Sprintf(`M&A deep dive for %s. Thesis: "%s: %s". CRITICAL: NO PARAGRAPHS. Every section must be concise bullet points. Be a senior M&A analyst. Be pragmatic and opinionated.`,
		target.Name, thesis.Title, thesis.Description)
}

func buildDeepDiveStrategicPrompt(thesis models.Thesis, target models.Target) string {
	return deepDiveContext(thesis, target) + `

Sections:
1. Overview: 2-3 bullets on what they do, founding year, location, key product.
2. Strategic Fit: 4-6 focused bullets on why this acquisition makes sense.
3. Team: 2-3 bullets on key people (founders, CTO, notable engineers).
4. Product & Technology: 3-5 bullets on what they've built, tech stack, open source presence.
5. Timing Assessment: 2-3 bullets on market maturity and why now is the right time.
6. Risks: 3-4 bullets on integration complexity, team retention, tech overlap.
7. Product Alignment Signals: Specific signals indicating how their product aligns with Vercel's roadmap.
8. Founders: Bullets on founder backgrounds and current roles. Format: "Name (Role/Background, ex-Company)".`
}

func buildDeepDiveFinancialPrompt(thesis models.Thesis, target models.Target) string {
	return deepDiveContext(thesis, target) + `

Sections:
1. Financials (Estimated): 2-3 bullets on revenue range, last known funding, estimated burn.
2. Comparable Transactions: 2-3 bullets on recent acquisitions in this space.
3. Funding and Investors: Bullets on total funding, last round, and key investors.
4. Competitors: A list of 5 direct and indirect competitors with details for a table.
5. Latest Cap Table and Shareholding: Estimated breakdown of ownership.
6. Investments and Acquisitions: Any companies they have acquired or invested in.
7. Tech Stack: Detailed bullets on their infrastructure, languages, and tools.
8. Sources: A list of 3-5 real or highly probable source URLs.`
}

func buildMarketMapPrompt(thesis models.Thesis, targets []models.Target) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior M&A strategist. Generate a comprehensive market map for the following strategic thesis:\n\"%s: %s\"\n\n", thesis.Title, thesis.Description)
	b.WriteString("CRITICAL: You MUST include the following identified startups in the appropriate categories:\n")
	for _, t := range targets {
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}
	b.WriteString(`
Organize the market into 4-6 logical categories. For each category, identify 4-5 key players (real companies).
Focus on COMPANY NAMES. Provide a very brief (max 10 words) rationale for their inclusion.
One category MUST be "Strategic Startups" and should include high-potential early-stage companies from the list provided.

Return this as structured JSON.`)
	return b.String()
}

func anyIfEmpty(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}
