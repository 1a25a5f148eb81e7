package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CREATE TABLE public.universities (
//     id                          UUID PRIMARY KEY,
//     name                        TEXT NOT NULL,
//     country                     TEXT,
//     type                        TEXT,
//     tuition_international       NUMERIC,
//     tuition_out_of_state        NUMERIC,
//     tuition_in_state            NUMERIC,
//     avg_tuition_per_year        NUMERIC,
//     cost_of_living_est          NUMERIC,
//     avg_financial_aid_package   NUMERIC,
//     percentage_receiving_aid    NUMERIC,
//     need_blind_admission        BOOLEAN,
//     scholarships_international  BOOLEAN,
//     min_gpa                     NUMERIC,
//     required_tests              JSONB,
//     post_grad_visa_strength     NUMERIC,
//     post_study_work_visa_months NUMERIC,
//     ranking_global              INTEGER,
//     ranking_world               INTEGER,
//     created_at                  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at                  TIMESTAMPTZ DEFAULT NOW()
// );

// University is read-only input to the predictor and the ranking engine.
// Every attribute except ID and Name is optional; nil means unknown.
type University struct {
	ID                        uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name                      string                      `gorm:"column:name;type:text;not null" json:"name"`
	Country                   *string                     `gorm:"column:country;type:text" json:"country,omitempty"`
	Type                      *string                     `gorm:"column:type;type:text" json:"type,omitempty"`
	TuitionInternational      *float64                    `gorm:"column:tuition_international;type:numeric" json:"tuition_international,omitempty"`
	TuitionOutOfState         *float64                    `gorm:"column:tuition_out_of_state;type:numeric" json:"tuition_out_of_state,omitempty"`
	TuitionInState            *float64                    `gorm:"column:tuition_in_state;type:numeric" json:"tuition_in_state,omitempty"`
	AvgTuitionPerYear         *float64                    `gorm:"column:avg_tuition_per_year;type:numeric" json:"avg_tuition_per_year,omitempty"`
	CostOfLivingEst           *float64                    `gorm:"column:cost_of_living_est;type:numeric" json:"cost_of_living_est,omitempty"`
	AvgFinancialAidPackage    *float64                    `gorm:"column:avg_financial_aid_package;type:numeric" json:"avg_financial_aid_package,omitempty"`
	PercentageReceivingAid    *float64                    `gorm:"column:percentage_receiving_aid;type:numeric" json:"percentage_receiving_aid,omitempty"`
	NeedBlindAdmission        *bool                       `gorm:"column:need_blind_admission" json:"need_blind_admission,omitempty"`
	ScholarshipsInternational *bool                       `gorm:"column:scholarships_international" json:"scholarships_international,omitempty"`
	MinGPA                    *float64                    `gorm:"column:min_gpa;type:numeric" json:"min_gpa,omitempty"`
	RequiredTests             datatypes.JSONSlice[string] `gorm:"column:required_tests;type:jsonb" json:"required_tests,omitempty"`
	PostGradVisaStrength      *float64                    `gorm:"column:post_grad_visa_strength;type:numeric" json:"post_grad_visa_strength,omitempty"`
	PostStudyWorkVisaMonths   *float64                    `gorm:"column:post_study_work_visa_months;type:numeric" json:"post_study_work_visa_months,omitempty"`
	RankingGlobal             *int                        `gorm:"column:ranking_global" json:"ranking_global,omitempty"`
	RankingWorld              *int                        `gorm:"column:ranking_world" json:"ranking_world,omitempty"`
	CreatedAt                 time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                 time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (University) TableName() string {
	return "universities"
}

func (u *University) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// VisaMonths returns post_grad_visa_strength, falling back to
// post_study_work_visa_months. Older rows only carry the latter.
func (u *University) VisaMonths() *float64 {
	if u.PostGradVisaStrength != nil {
		return u.PostGradVisaStrength
	}
	return u.PostStudyWorkVisaMonths
}
