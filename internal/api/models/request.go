package models

import "minion-profit/internal/model"

// ResultsQuery is the query string of GET /api/v1/results
type ResultsQuery struct {
	Minion  string `form:"minion"`                                   // substring, case-insensitive
	Seconds string `form:"seconds"`                                  // comma-separated window lengths
	MaxCost int64  `form:"max_cost" binding:"omitempty,min=0"`       // 0 = no budget
	Sort    string `form:"sort"`                                     // default: instant_sell
	Order   string `form:"order" binding:"omitempty,oneof=asc desc"` // default: desc
	Limit   int    `form:"limit" binding:"omitempty,min=0,max=1000"` // default: 20
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

// SimulateRequest represents the request body for simulating one setup
type SimulateRequest struct {
	model.Task
	IncludeBulk bool `json:"include_bulk,omitempty"` // default: false
}
