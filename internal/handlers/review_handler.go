package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/scholarship-api/internal/models"
)

type createReviewRequest struct {
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail" binding:"required,email"`
	ScholarshipName string `json:"scholarshipName"`
	UniversityName  string `json:"universityName"`
	UserPhotoURL    string `json:"userPhotoURL"`
	Comment         string `json:"comment"`
	Rating          int    `json:"rating" binding:"required,min=1,max=5"`
	ScholarshipID   string `json:"scholarshipId" binding:"required"`
}

type updateReviewRequest struct {
	UserName        *string `json:"userName" bson:"userName,omitempty"`
	ScholarshipName *string `json:"scholarshipName" bson:"scholarshipName,omitempty"`
	UniversityName  *string `json:"universityName" bson:"universityName,omitempty"`
	UserPhotoURL    *string `json:"userPhotoURL" bson:"userPhotoURL,omitempty"`
	Comment         *string `json:"comment" bson:"comment,omitempty"`
	Rating          *int    `json:"rating" bson:"rating,omitempty" binding:"omitempty,min=1,max=5"`
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review := models.Review{
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		ScholarshipName: req.ScholarshipName,
		UniversityName:  req.UniversityName,
		UserPhotoURL:    req.UserPhotoURL,
		Comment:         req.Comment,
		Rating:          req.Rating,
		ScholarshipID:   req.ScholarshipID,
		CreatedAt:       time.Now().UTC(),
	}
	insert(h, c, h.Store.Reviews, &review, "review")
}

func (h *Handler) GetReviews(c *gin.Context) {
	list(h, c, h.Store.Reviews, nil, "reviews")
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req updateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	patch(h, c, h.Store.Reviews, id, req, "review")
}

func (h *Handler) DeleteReview(c *gin.Context) {
	remove(h, c, h.Store.Reviews, "review")
}
