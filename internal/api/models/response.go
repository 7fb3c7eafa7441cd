package models

import "minion-profit/internal/analysis"

// ResultsResponse is one page of ranked results
type ResultsResponse struct {
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	Results []analysis.Ranked `json:"results"`
}

// SummaryResponse holds one summary per minion and window
type SummaryResponse struct {
	Summaries []analysis.Summary `json:"summaries"`
}

// CatalogResponse lists the entries of one catalog kind
type CatalogResponse struct {
	Kind  string   `json:"kind"`
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse without details.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
