package ai

// SuggestedThesis is one AI-proposed acquisition thesis.
type SuggestedThesis struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RelevanceScore float64 `json:"relevance_score"`
	Rationale      string  `json:"rationale"`
}

// SearchParameters are the inferred constraints of a calibrated search.
type SearchParameters struct {
	SizeRange    string `json:"size_range"`
	FundingStage string `json:"funding_stage"`
	Geography    string `json:"geography"`
	Technologies string `json:"technologies"`
}

// WorkflowStep is one step of the agentic workflow plan in a calibration.
type WorkflowStep struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Logic string   `json:"logic"`
	Tasks []string `json:"tasks"`
}

// Calibration is the structured search plan derived from a thesis: market
// context, search parameters, weighted evaluation signals (6Ps framework),
// a workflow plan and an overall relevance score.
type Calibration struct {
	MarketContext  string           `json:"market_context"`
	Parameters     SearchParameters `json:"parameters"`
	Signals        []string         `json:"signals"`
	Workflow       []WorkflowStep   `json:"workflow"`
	RelevanceScore float64          `json:"relevance_score"`
}

// CandidateTarget is one company returned by a search, before it gets an id
// and is persisted as a Target.
type CandidateTarget struct {
	Name                   string `json:"name"`
	OneLiner               string `json:"one_liner"`
	Stage                  string `json:"stage"`
	Headcount              string `json:"headcount"`
	FitRating              string `json:"fit_rating"`
	SignalScore            int    `json:"signal_score"`
	TopSignal              string `json:"top_signal"`
	ClientOverlapCurrent   string `json:"client_overlap_current"`
	ClientOverlapPotential string `json:"client_overlap_potential"`
	ProductRating          string `json:"product_rating"`
	ProductScore           int    `json:"product_score"`
	Valuation              string `json:"valuation"`
	FundingStageDetail     string `json:"funding_stage_detail"`
	CurrentInvestors       string `json:"current_investors"`
}

// signalUpdate is the raw per-company refresh row as the model returns it,
// keyed by company name.
type signalUpdate struct {
	Name        string `json:"name"`
	SignalScore int    `json:"signal_score"`
	TopSignal   string `json:"top_signal"`
}

// TargetUpdate is a refresh row matched back to a stored target id.
type TargetUpdate struct {
	ID          string `json:"id"`
	SignalScore int    `json:"signal_score"`
	TopSignal   string `json:"top_signal"`
}

// Competitor is one row of the deep-dive competitor table.
type Competitor struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Details     string `json:"details"`
	Description string `json:"description"`
	Funding     string `json:"funding"`
	Investors   string `json:"investors"`
}

// DeepDiveContent is the full multi-section research dossier for one
// target. It is assembled from two model calls: the strategic half
// (overview through founders) and the financial half (financials through
// sources).
type DeepDiveContent struct {
	Overview                []string     `json:"overview"`
	StrategicFit            []string     `json:"strategic_fit"`
	Team                    []string     `json:"team"`
	ProductTech             []string     `json:"product_tech"`
	Timing                  []string     `json:"timing"`
	Risks                   []string     `json:"risks"`
	ProductAlignmentSignals []string     `json:"product_alignment_signals"`
	Founders                []string     `json:"founders"`
	Financials              []string     `json:"financials"`
	Comparables             []string     `json:"comparables"`
	FundingInvestors        []string     `json:"funding_investors"`
	Competitors             []Competitor `json:"competitors"`
	CapTableShareholding    []string     `json:"cap_table_shareholding"`
	InvestmentsAcquisitions []string     `json:"investments_acquisitions"`
	Sources                 string       `json:"sources"`
}

// MappedCompany is one company placed in a market-map category.
type MappedCompany struct {
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
}

// MarketCategory is one named cluster of a market map.
type MarketCategory struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Companies   []MappedCompany `json:"companies"`
}

// MarketMap clusters known and researched companies into strategic
// categories.
type MarketMap struct {
	Categories []MarketCategory `json:"categories"`
}
