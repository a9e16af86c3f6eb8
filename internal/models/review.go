package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	ScholarshipName string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName  string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	UserPhotoURL    string             `bson:"userPhotoURL,omitempty" json:"userPhotoURL,omitempty"`
	Comment         string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Rating          int                `bson:"rating" json:"rating"` // 1-5
	ScholarshipID   string             `bson:"scholarshipId" json:"scholarshipId"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
