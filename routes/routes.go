package routes

import (
	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.GetAuthController(s)
	itemCtl := controllers.NewItemController(s)
	orderCtl := controllers.NewOrderController(s)
	reviewCtl := controllers.NewReviewController(s)
	payoutCtl := controllers.NewPayoutController(s)
	adminCtl := controllers.GetAdminController(s)

	// 复用的中间件
	authMW := app.AuthRequired(a.AppSessions(), s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证（公开+受保护）
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.GET("/verify/:token", authCtl.Verify)
		auth.POST("/login", authCtl.Login)
	}

	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", authCtl.Whoami)
		authed.POST("/profile", authCtl.ProfileSetup)
		authed.POST("/logout", authCtl.Logout)
	}

	// ------------------------------
	// 物品：挂单 / 商品墙 / 详情
	// ------------------------------
	items := r.Group("/api/items", authMW, seenMW)
	{
		items.POST("", itemCtl.CreateItem)
		items.GET("", itemCtl.ListItems)
		items.GET("/:id", itemCtl.ItemDetail)
	}

	// ------------------------------
	// 订单：下单 / 审批 / 列表 + 评价
	// ------------------------------
	orders := r.Group("/api/orders", authMW, seenMW)
	{
		orders.POST("", orderCtl.CreateOrder)
		orders.GET("/mine", orderCtl.MyOrders)
		orders.GET("/dashboard", orderCtl.Dashboard)
		orders.POST("/:id/approve", orderCtl.Approve)
		orders.POST("/:id/decline", orderCtl.Decline)

		orders.POST("/:id/review-product", reviewCtl.ReviewProduct)
		orders.POST("/:id/review-user", reviewCtl.ReviewUser)
	}

	// ------------------------------
	// 提现
	// ------------------------------
	payouts := r.Group("/api/payouts", authMW, seenMW)
	{
		payouts.POST("", payoutCtl.RequestPayout)
		payouts.GET("/mine", payoutCtl.MyPayouts)
	}

	// ------------------------------
	// 管理端（仅管理员）
	// ------------------------------
	admin := r.Group("/api/admin", authMW, adminMW)
	{
		admin.GET("/users", adminCtl.ListUsers)
		admin.POST("/users/:id/ban", adminCtl.BanUser)
		admin.GET("/payouts", adminCtl.ListPendingPayouts)
		admin.POST("/payouts/:id/approve", adminCtl.ApprovePayout)
	}
}
