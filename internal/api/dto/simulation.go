package dto

type ParcelRequest struct {
	Place   string `json:"place"`
	Address string `json:"address"`
}

type SimulationRequest struct {
	Policy  string          `json:"policy"`
	Start   string          `json:"start"`
	Parcels []ParcelRequest `json:"parcels"`
	Seed    *uint64         `json:"seed"`
	Trace   bool            `json:"trace"`
}

type SimulationResponse struct {
	Policy string   `json:"policy"`
	Turns  int      `json:"turns"`
	Moves  []string `json:"moves,omitempty"`
}

type ComparisonRequest struct {
	Policies    []string `json:"policies"`
	Samples     int      `json:"samples"`
	ParcelCount int      `json:"parcel_count"`
	Seed        *uint64  `json:"seed"`
}

type PolicyResultResponse struct {
	Policy       string  `json:"policy"`
	TotalTurns   int     `json:"total_turns"`
	AverageTurns float64 `json:"average_turns"`
}

type ComparisonResponse struct {
	RunID   string                 `json:"run_id"`
	Samples int                    `json:"samples"`
	RanAt   string                 `json:"ran_at,omitempty"`
	Results []PolicyResultResponse `json:"results"`
}

type ListComparisonsResponse struct {
	Comparisons []ComparisonResponse `json:"comparisons"`
}
