package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentProfile is upserted by the student and read-only to the predictor.
// Tri-state booleans: nil means unknown, which is not the same as false.
type StudentProfile struct {
	StudentID            uuid.UUID                   `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	GPA                  *float64                    `gorm:"column:gpa;type:numeric" json:"gpa"`
	SATScore             *int                        `gorm:"column:sat_score" json:"sat_score"`
	ACTScore             *int                        `gorm:"column:act_score" json:"act_score"`
	FamilyIncome         *float64                    `gorm:"column:family_income;type:numeric" json:"family_income"`
	Dependents           *int                        `gorm:"column:dependents" json:"dependents"`
	InternationalStudent *bool                       `gorm:"column:international_student" json:"international_student"`
	InState              *bool                       `gorm:"column:in_state" json:"in_state"`
	FirstGeneration      *bool                       `gorm:"column:first_generation" json:"first_generation"`
	SpecialTalents       datatypes.JSONSlice[string] `gorm:"column:special_talents;type:jsonb" json:"special_talents"`
	CreatedAt            time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (StudentProfile) TableName() string {
	return "student_financial_profiles"
}
