package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Scholarship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipName     string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	Image               string             `bson:"image,omitempty" json:"image,omitempty"`
	Country             string             `bson:"country,omitempty" json:"country,omitempty"`
	City                string             `bson:"city,omitempty" json:"city,omitempty"`
	WorldRank           *int               `bson:"worldRank,omitempty" json:"worldRank,omitempty"`
	SubjectCategory     string             `bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	ScholarshipCategory string             `bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"` // Full fund, Partial, Self-fund
	Degree              string             `bson:"degree,omitempty" json:"degree,omitempty"`
	TuitionFees         *float64           `bson:"tuitionFees,omitempty" json:"tuitionFees,omitempty"`
	ApplicationFees     *float64           `bson:"applicationFees,omitempty" json:"applicationFees,omitempty"`
	ServiceCharge       *float64           `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	Deadline            string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
