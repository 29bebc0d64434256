// controllers/item_controller.go
package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// POST /api/items — 任何登录用户都可以挂出自己的物品
func (ic *ItemController) CreateItem(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Name            string `json:"name" binding:"required"`
		Description     string `json:"description"`
		RatePerDayCents int64  `json:"ratePerDayCents" binding:"required"`
		TotalQuantity   int    `json:"totalQuantity"`
		Image           string `json:"image"` // 文件名引用，上传由外部处理
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.RatePerDayCents <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "ratePerDayCents must be positive"})
		return
	}
	if in.TotalQuantity <= 0 {
		in.TotalQuantity = 1
	}

	it := &models.Item{
		ID:              uuid.NewString(),
		OwnerID:         uid,
		Name:            in.Name,
		Description:     in.Description,
		RatePerDayCents: in.RatePerDayCents,
		TotalQuantity:   in.TotalQuantity,
		Image:           in.Image,
	}
	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/items — 商品墙，带可借件数和最早归还日
func (ic *ItemController) ListItems(c *gin.Context) {
	rows, err := ic.Repo.ListItemsWithAvailability(c.Request.Context(), today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

// GET /api/items/:id — 详情 + 可用性 + 评价
func (ic *ItemController) ItemDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing item id"})
		return
	}
	it, err := ic.Repo.FindItemByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	row, err := ic.Repo.ItemAvailability(c.Request.Context(), it, today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	reviews, err := ic.Repo.ListProductReviews(c.Request.Context(), it.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"item":          row.Item,
		"available":     row.Available,
		"nextAvailable": row.NextAvailable,
		"reviews":       reviews,
	})
}
