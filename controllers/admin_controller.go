// controllers/admin_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct{ *Srv }

func GetAdminController(s *Srv) *AdminController { return &AdminController{Srv: s} }

// GET /api/admin/users?q=&page=&size=
func (ad *AdminController) ListUsers(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ad.Repo.ListUsers(c.Request.Context(), q, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"total": res.Total,
		"users": res.Users,
	})
}

// POST /api/admin/users/:id/ban
func (ad *AdminController) BanUser(c *gin.Context) {
	actorID, _ := currentUserID(c)
	targetID := c.Param("id")

	var in struct {
		Days   int    `json:"days" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Days <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "days must be positive"})
		return
	}
	if actorID == targetID {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot ban yourself"})
		return
	}

	if err := ad.Repo.BanUser(c.Request.Context(), actorID, targetID, in.Days, in.Reason, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	// 封禁生效的同时踢掉所有会话
	_ = ad.AppSess.RevokeAllForUser(c.Request.Context(), targetID)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/admin/payouts — 待审批的提现
func (ad *AdminController) ListPendingPayouts(c *gin.Context) {
	ps, err := ad.Repo.ListPendingPayouts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"payouts": ps})
}

// POST /api/admin/payouts/:id/approve
func (ad *AdminController) ApprovePayout(c *gin.Context) {
	p, err := ad.Repo.ApprovePayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "payout not found"})
		case errors.Is(err, db.ErrPayoutNotPending):
			c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		case errors.Is(err, db.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, p)
}
