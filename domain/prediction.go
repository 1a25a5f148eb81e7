package domain

import "github.com/google/uuid"

type AidBreakdown struct {
	MeritBased   int `json:"merit_based"`
	NeedBased    int `json:"need_based"`
	Scholarships int `json:"scholarships"`
}

type CostScenarios struct {
	Optimistic   int `json:"optimistic"`
	Realistic    int `json:"realistic"`
	Conservative int `json:"conservative"`
}

type PredictionMethodology struct {
	MeritScore       int `json:"merit_score"`
	DemonstratedNeed int `json:"demonstrated_need"`
	EFC              int `json:"efc"`
}

// Prediction is derived on every call and never stored.
type Prediction struct {
	GrossTuition     int                   `json:"gross_tuition"`
	EstimatedAid     int                   `json:"estimated_aid"`
	AidBreakdown     AidBreakdown          `json:"aid_breakdown"`
	NetCost          int                   `json:"net_cost"`
	CostOfLiving     int                   `json:"cost_of_living"`
	TotalOutOfPocket int                   `json:"total_out_of_pocket"`
	Scenarios        CostScenarios         `json:"scenarios"`
	ConfidenceScore  int                   `json:"confidence_score"`
	Methodology      PredictionMethodology `json:"methodology"`
}

type BatchPrediction struct {
	UniversityID   uuid.UUID   `json:"university_id"`
	UniversityName string      `json:"university_name"`
	Prediction     *Prediction `json:"prediction"`
}
