// controllers/review_controller.go
package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/db"
	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewController struct{ *Srv }

func NewReviewController(s *Srv) *ReviewController { return &ReviewController{Srv: s} }

// POST /api/orders/:id/review-product — 借用人评物品，一单一条
func (rc *ReviewController) ReviewProduct(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
		Image   string `json:"image"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !models.ValidRating(in.Rating) {
		c.JSON(http.StatusBadRequest, app.H{"error": "rating must be between 1 and 5"})
		return
	}

	rev, err := rc.Repo.CreateProductReview(c.Request.Context(), c.Param("id"), uid, in.Rating, in.Comment, in.Image)
	if err != nil {
		rc.writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// POST /api/orders/:id/review-user — 物主评借用人，要等租期结束
func (rc *ReviewController) ReviewUser(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !models.ValidRating(in.Rating) {
		c.JSON(http.StatusBadRequest, app.H{"error": "rating must be between 1 and 5"})
		return
	}

	rev, err := rc.Repo.CreateUserReview(c.Request.Context(), c.Param("id"), uid, in.Rating, in.Comment, today())
	if err != nil {
		rc.writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

func (rc *ReviewController) writeReviewErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
	case errors.Is(err, db.ErrNotBorrower), errors.Is(err, db.ErrNotOwner):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrOrderNotApproved), errors.Is(err, db.ErrRentalNotFinished):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
