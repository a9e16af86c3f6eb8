package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/scholarship-api/internal/models"
)

type createApplicationRequest struct {
	StudentEmail      string   `json:"studentEmail" binding:"required,email"`
	StudentName       string   `json:"studentName"`
	UniversityName    string   `json:"universityName"`
	ScholarshipName   string   `json:"scholarshipName"`
	ScholarshipID     string   `json:"scholarshipId" binding:"required"`
	ApplicationFees   *float64 `json:"applicationFees" binding:"omitempty,min=0"`
	UniversityAddress string   `json:"universityAddress"`
}

// Only the processing state of an application may change after it is filed.
type updateApplicationRequest struct {
	Status  *string `json:"status" bson:"status,omitempty" binding:"omitempty,oneof=pending processing completed rejected"`
	Payment *string `json:"payment" bson:"payment,omitempty" binding:"omitempty,oneof=unpaid paid"`
}

// CreateApplication files an application as pending and unpaid whatever the
// body says about either.
func (h *Handler) CreateApplication(c *gin.Context) {
	var req createApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	application := models.Application{
		StudentEmail:      req.StudentEmail,
		StudentName:       req.StudentName,
		UniversityName:    req.UniversityName,
		ScholarshipName:   req.ScholarshipName,
		ScholarshipID:     req.ScholarshipID,
		ApplicationFees:   req.ApplicationFees,
		UniversityAddress: req.UniversityAddress,
		Status:            models.ApplicationPending,
		Payment:           models.PaymentUnpaid,
		CreatedAt:         time.Now().UTC(),
	}
	insert(h, c, h.Store.Applications, &application, "application")
}

func (h *Handler) GetApplications(c *gin.Context) {
	list(h, c, h.Store.Applications, nil, "applications")
}

func (h *Handler) UpdateApplication(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req updateApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	patch(h, c, h.Store.Applications, id, req, "application")
}

func (h *Handler) DeleteApplication(c *gin.Context) {
	remove(h, c, h.Store.Applications, "application")
}
