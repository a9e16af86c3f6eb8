package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationPending    = "pending"
	ApplicationProcessing = "processing"
	ApplicationCompleted  = "completed"
	ApplicationRejected   = "rejected"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Application struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentEmail      string             `bson:"studentEmail" json:"studentEmail"`
	StudentName       string             `bson:"studentName,omitempty" json:"studentName,omitempty"`
	UniversityName    string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	ScholarshipName   string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	ScholarshipID     string             `bson:"scholarshipId" json:"scholarshipId"` // copied, never checked against scholarships
	ApplicationFees   *float64           `bson:"applicationFees,omitempty" json:"applicationFees,omitempty"`
	UniversityAddress string             `bson:"universityAddress,omitempty" json:"universityAddress,omitempty"`
	Status            string             `bson:"status" json:"status"`
	Payment           string             `bson:"payment" json:"payment"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
