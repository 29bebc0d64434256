// controllers/payout_controller.go
package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/db"

	"github.com/gin-gonic/gin"
)

type PayoutController struct{ *Srv }

func NewPayoutController(s *Srv) *PayoutController { return &PayoutController{Srv: s} }

// POST /api/payouts — 申请提现，审批走管理员
func (pc *PayoutController) RequestPayout(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		UpiID       string `json:"upiId" binding:"required"`
		AmountCents int64  `json:"amountCents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	p, err := pc.Repo.CreatePayout(c.Request.Context(), uid, in.UpiID, in.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrInvalidAmount), errors.Is(err, db.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/payouts/mine
func (pc *PayoutController) MyPayouts(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	ps, err := pc.Repo.ListPayoutsByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"payouts": ps})
}
