package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/scholarship-api/internal/models"
)

type createScholarshipRequest struct {
	ScholarshipName     string   `json:"scholarshipName" binding:"required"`
	UniversityName      string   `json:"universityName" binding:"required"`
	Image               string   `json:"image"`
	Country             string   `json:"country"`
	City                string   `json:"city"`
	WorldRank           *int     `json:"worldRank" binding:"omitempty,min=0"`
	SubjectCategory     string   `json:"subjectCategory"`
	ScholarshipCategory string   `json:"scholarshipCategory"`
	Degree              string   `json:"degree"`
	TuitionFees         *float64 `json:"tuitionFees" binding:"omitempty,min=0"`
	ApplicationFees     *float64 `json:"applicationFees" binding:"omitempty,min=0"`
	ServiceCharge       *float64 `json:"serviceCharge" binding:"omitempty,min=0"`
	Deadline            string   `json:"deadline"`
}

// updateScholarshipRequest carries only what the client sent; the bson tags
// decide which fields reach $set.
type updateScholarshipRequest struct {
	ScholarshipName     *string  `json:"scholarshipName" bson:"scholarshipName,omitempty" binding:"omitempty,min=1"`
	UniversityName      *string  `json:"universityName" bson:"universityName,omitempty" binding:"omitempty,min=1"`
	Image               *string  `json:"image" bson:"image,omitempty"`
	Country             *string  `json:"country" bson:"country,omitempty"`
	City                *string  `json:"city" bson:"city,omitempty"`
	WorldRank           *int     `json:"worldRank" bson:"worldRank,omitempty" binding:"omitempty,min=0"`
	SubjectCategory     *string  `json:"subjectCategory" bson:"subjectCategory,omitempty"`
	ScholarshipCategory *string  `json:"scholarshipCategory" bson:"scholarshipCategory,omitempty"`
	Degree              *string  `json:"degree" bson:"degree,omitempty"`
	TuitionFees         *float64 `json:"tuitionFees" bson:"tuitionFees,omitempty" binding:"omitempty,min=0"`
	ApplicationFees     *float64 `json:"applicationFees" bson:"applicationFees,omitempty" binding:"omitempty,min=0"`
	ServiceCharge       *float64 `json:"serviceCharge" bson:"serviceCharge,omitempty" binding:"omitempty,min=0"`
	Deadline            *string  `json:"deadline" bson:"deadline,omitempty"`
}

func (h *Handler) CreateScholarship(c *gin.Context) {
	var req createScholarshipRequest
	if !h.bindJSON(c, &req) {
		return
	}

	scholarship := models.Scholarship{
		ScholarshipName:     req.ScholarshipName,
		UniversityName:      req.UniversityName,
		Image:               req.Image,
		Country:             req.Country,
		City:                req.City,
		WorldRank:           req.WorldRank,
		SubjectCategory:     req.SubjectCategory,
		ScholarshipCategory: req.ScholarshipCategory,
		Degree:              req.Degree,
		TuitionFees:         req.TuitionFees,
		ApplicationFees:     req.ApplicationFees,
		ServiceCharge:       req.ServiceCharge,
		Deadline:            req.Deadline,
		CreatedAt:           time.Now().UTC(),
	}
	insert(h, c, h.Store.Scholarships, &scholarship, "scholarship")
}

func (h *Handler) GetScholarships(c *gin.Context) {
	list(h, c, h.Store.Scholarships, nil, "scholarships")
}

func (h *Handler) UpdateScholarship(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req updateScholarshipRequest
	if !h.bindJSON(c, &req) {
		return
	}
	patch(h, c, h.Store.Scholarships, id, req, "scholarship")
}

func (h *Handler) DeleteScholarship(c *gin.Context) {
	remove(h, c, h.Store.Scholarships, "scholarship")
}
