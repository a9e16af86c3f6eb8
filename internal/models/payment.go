package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is what the client reports after confirming an intent. It is not
// checked against the provider.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	ScholarshipID   string             `bson:"scholarshipId" json:"scholarshipId"`
	ScholarshipName string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	Amount          float64            `bson:"amount" json:"amount"`
	TransactionID   string             `bson:"transactionId" json:"transactionId"`
	PaymentMethod   string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
