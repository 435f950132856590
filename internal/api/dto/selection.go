package dto

type SelectionRequest struct {
	AnalystID int      `json:"analyst_id"`
	SiteCodes []string `json:"site_codes"`
}

type ActivitySelectionRequest struct {
	AnalystID int `json:"analyst_id"`
	// Activity ids keyed by site code.
	Activities map[string][]int `json:"activities"`
}

type SelectionResponse struct {
	AnalystID int    `json:"analyst_id"`
	Count     int    `json:"count"`
	Message   string `json:"message"`
}
