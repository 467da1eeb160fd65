package ai

import "google.golang.org/genai"

// Response schemas declared to the model alongside each prompt. Every call
// sets responseMimeType application/json plus one of these, so the model is
// contractually bound to a shape the typed parse can rely on.

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strArray() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func suggestedThesesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":           str(),
				"description":     str(),
				"relevance_score": {Type: genai.TypeNumber},
				"rationale":       str(),
			},
			Required: []string{"title", "description", "relevance_score", "rationale"},
		},
	}
}

func calibrationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"market_context": str(),
			"parameters": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"size_range":    str(),
					"funding_stage": str(),
					"geography":     str(),
					"technologies":  str(),
				},
				Required: []string{"size_range", "funding_stage", "geography", "technologies"},
			},
			"signals": strArray(),
			"workflow": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":    str(),
						"title": str(),
						"logic": str(),
						"tasks": strArray(),
					},
					Required: []string{"id", "title", "logic", "tasks"},
				},
			},
			"relevance_score": {Type: genai.TypeNumber},
		},
		Required: []string{"market_context", "parameters", "signals", "workflow", "relevance_score"},
	}
}

func candidateTargetsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":                     str(),
				"one_liner":                str(),
				"stage":                    str(),
				"headcount":                str(),
				"fit_rating":               {Type: genai.TypeString, Enum: []string{"Strong", "Moderate", "Weak"}},
				"signal_score":             {Type: genai.TypeInteger},
				"top_signal":               str(),
				"client_overlap_current":   str(),
				"client_overlap_potential": str(),
				"product_rating":           str(),
				"product_score":            {Type: genai.TypeInteger},
				"valuation":                str(),
				"funding_stage_detail":     str(),
				"current_investors":        str(),
			},
			Required: []string{"name", "one_liner", "stage", "headcount", "fit_rating", "signal_score", "top_signal"},
		},
	}
}

func signalUpdatesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":         str(),
				"signal_score": {Type: genai.TypeInteger},
				"top_signal":   str(),
			},
			Required: []string{"name", "signal_score", "top_signal"},
		},
	}
}

func deepDiveStrategicSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overview":                  strArray(),
			"strategic_fit":             strArray(),
			"team":                      strArray(),
			"product_tech":              strArray(),
			"timing":                    strArray(),
			"risks":                     strArray(),
			"product_alignment_signals": strArray(),
			"founders":                  strArray(),
		},
		Required: []string{
			"overview", "strategic_fit", "team", "product_tech",
			"timing", "risks", "product_alignment_signals", "founders",
		},
	}
}

func deepDiveFinancialSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"financials":        strArray(),
			"comparables":       strArray(),
			"funding_investors": strArray(),
			"competitors": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"rank":        {Type: genai.TypeInteger},
						"name":        str(),
						"details":     str(),
						"description": str(),
						"funding":     str(),
						"investors":   str(),
					},
					Required: []string{"rank", "name", "details", "description", "funding", "investors"},
				},
			},
			"cap_table_shareholding":   strArray(),
			"investments_acquisitions": strArray(),
			"sources":                  str(),
		},
		Required: []string{
			"financials", "comparables", "funding_investors", "competitors",
			"cap_table_shareholding", "investments_acquisitions", "sources",
		},
	}
}

func marketMapSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"categories": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        str(),
						"description": str(),
						"companies": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"name":      str(),
									"rationale": str(),
								},
								Required: []string{"name", "rationale"},
							},
						},
					},
					Required: []string{"name", "description", "companies"},
				},
			},
		},
		Required: []string{"categories"},
	}
}
