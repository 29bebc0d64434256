// controllers/order_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ *Srv }

func NewOrderController(s *Srv) *OrderController { return &OrderController{Srv: s} }

const dateLayout = "2006-01-02"

// POST /api/orders — 下单（pending，等物主审批）
func (oc *OrderController) CreateOrder(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		ItemID    string `json:"itemId" binding:"required"`
		StartDate string `json:"startDate" binding:"required"`
		EndDate   string `json:"endDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid startDate"})
		return
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid endDate"})
		return
	}

	o, err := oc.Repo.CreateOrder(c.Request.Context(), uid, in.ItemID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, o)
}

// POST /api/orders/:id/approve — 只有物主能批，重复批不会二次入账
func (oc *OrderController) Approve(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	o, err := oc.Repo.ApproveOrder(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		oc.writeOrderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /api/orders/:id/decline
func (oc *OrderController) Decline(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	o, err := oc.Repo.DeclineOrder(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		oc.writeOrderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (oc *OrderController) writeOrderErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
	case errors.Is(err, db.ErrNotOwner):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrOrderNotPending):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// GET /api/orders/mine — 借用人视角
func (oc *OrderController) MyOrders(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	rows, err := oc.Repo.ListBorrowerOrders(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"orders": rows})
}

// GET /api/orders/dashboard — 物主视角：请求列表 + 累计收入
func (oc *OrderController) Dashboard(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	res, err := oc.Repo.OwnerDashboard(c.Request.Context(), uid, today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
