package main

import (
	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/interfaces/http/handlers"
	"mercato.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	roleHandler         *handlers.RoleHandler
	shopHandler         *handlers.ShopHandler
	warehouseHandler    *handlers.WarehouseHandler
	productHandler      *handlers.ProductHandler
	categoryHandler     *handlers.CategoryHandler
	orderHandler        *handlers.OrderHandler
	cartHandler         *handlers.CartHandler
	notificationHandler *handlers.NotificationHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	auth := d.authMiddleware
	can := middleware.RequirePermission

	// Stored avatars are served outside the API prefix.
	r.GET("/avatars/:name", d.userHandler.GetAvatar)

	v1 := r.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", d.authHandler.Signup)
			authRoutes.POST("/login", d.authHandler.Login)
			authRoutes.POST("/logout", auth, d.authHandler.Logout)
		}

		users := v1.Group("/users/me")
		users.Use(auth)
		{
			users.GET("", d.userHandler.GetMe)
			users.PATCH("", d.userHandler.UpdateMe)
			users.PUT("/password", d.userHandler.ChangePassword)
			users.POST("/avatar", d.userHandler.UploadAvatar)
		}

		roles := v1.Group("/roles")
		roles.Use(auth)
		{
			roles.GET("", d.roleHandler.ListRoles)
			roles.POST("", can(rbac.OpCreateRole), d.roleHandler.CreateRole)
		}

		roleRequests := v1.Group("/role")
		roleRequests.Use(auth)
		{
			roleRequests.POST("/request", can(rbac.OpRequestRole), d.roleHandler.RequestRole)
			roleRequests.GET("/requests/me", d.roleHandler.ListMyRoleRequests)
			roleRequests.GET("/requests", can(rbac.OpReviewRoleReqs), d.roleHandler.ListRoleRequests)
			roleRequests.POST("/approve/:id", can(rbac.OpReviewRoleReqs), d.roleHandler.ApproveRoleRequest)
			roleRequests.POST("/reject/:id", can(rbac.OpReviewRoleReqs), d.roleHandler.RejectRoleRequest)
		}

		// Public catalogue
		v1.GET("/shops", d.shopHandler.ListApprovedShops)
		v1.GET("/shops/:id/products", d.productHandler.ListShopProducts)
		v1.GET("/warehouses/:id/products", d.productHandler.ListWarehouseProducts)
		v1.GET("/products", d.productHandler.SearchProducts)
		v1.GET("/products/:id", d.productHandler.GetProduct)
		v1.GET("/categories", d.categoryHandler.ListCategories)
		v1.GET("/categories/:id", d.categoryHandler.GetCategory)

		shops := v1.Group("/shops")
		shops.Use(auth)
		{
			shops.POST("", can(rbac.OpCreateShop), d.shopHandler.CreateShop)
			shops.GET("/mine", d.shopHandler.ListMyShops)
			shops.GET("/pending", can(rbac.OpViewPending), d.shopHandler.ListPendingShops)
			shops.PATCH("/:id", d.shopHandler.UpdateShop)
			shops.DELETE("/:id", d.shopHandler.DeleteShop)
			shops.PUT("/:id/approve", can(rbac.OpReviewShop), d.shopHandler.ApproveShop)
			shops.PUT("/:id/reject", can(rbac.OpReviewShop), d.shopHandler.RejectShop)
			shops.POST("/:id/products", d.productHandler.CreateShopProduct)
			shops.GET("/:id/orders", d.orderHandler.ListShopOrders)
		}

		warehouse := v1.Group("/warehouse")
		warehouse.Use(auth)
		{
			warehouse.POST("", can(rbac.OpCreateWarehouse), d.warehouseHandler.CreateWarehouse)
			warehouse.GET("", d.warehouseHandler.GetMyWarehouse)
			warehouse.PATCH("", d.warehouseHandler.UpdateMyWarehouse)
			warehouse.DELETE("", d.warehouseHandler.DeleteMyWarehouse)
			warehouse.POST("/products", d.productHandler.CreateWarehouseProduct)
		}

		warehouses := v1.Group("/warehouses")
		warehouses.Use(auth)
		{
			warehouses.GET("/pending", can(rbac.OpViewPending), d.warehouseHandler.ListPendingWarehouses)
			warehouses.PUT("/:id/approve", can(rbac.OpReviewWarehouse), d.warehouseHandler.ApproveWarehouse)
			warehouses.PUT("/:id/reject", can(rbac.OpReviewWarehouse), d.warehouseHandler.RejectWarehouse)
		}

		products := v1.Group("/products")
		products.Use(auth)
		{
			products.PATCH("/:id", d.productHandler.UpdateProduct)
			products.DELETE("/:id", d.productHandler.DeleteProduct)
		}

		categories := v1.Group("/categories")
		categories.Use(auth, can(rbac.OpManageCategory))
		{
			categories.POST("", d.categoryHandler.CreateCategory)
			categories.PUT("/:id", d.categoryHandler.UpdateCategory)
			categories.DELETE("/:id", d.categoryHandler.DeleteCategory)
		}

		orders := v1.Group("/orders")
		orders.Use(auth)
		{
			orders.POST("", can(rbac.OpCreateOrder), middleware.IdempotencyMiddleware(), d.orderHandler.CreateOrder)
			orders.GET("/mine", d.orderHandler.ListMyOrders)
			orders.GET("/:id", d.orderHandler.GetOrder)
			orders.POST("/:id/cancel", d.orderHandler.CancelOrder)
			orders.PUT("/:id/status", can(rbac.OpUpdateOrder), d.orderHandler.UpdateOrderStatus)
		}
		v1.POST("/warehouse-orders", auth, can(rbac.OpWarehouseOrder), d.orderHandler.CreateWarehouseOrder)
		v1.POST("/request-warehouse-order", auth, can(rbac.OpRequestWarehouse), d.orderHandler.RequestWarehouseOrder)

		cart := v1.Group("/cart")
		cart.Use(auth)
		{
			cart.GET("", d.cartHandler.ListCart)
			cart.POST("", d.cartHandler.AddToCart)
			cart.PUT("/:productId", d.cartHandler.UpdateCartItem)
			cart.DELETE("/:productId", d.cartHandler.RemoveFromCart)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(auth)
		{
			wishlist.GET("", d.cartHandler.ListWishlist)
			wishlist.POST("", d.cartHandler.AddToWishlist)
			wishlist.DELETE("/:productId", d.cartHandler.RemoveFromWishlist)
		}

		v1.GET("/notifications", auth, d.notificationHandler.ListNotifications)

		admin := v1.Group("/admin")
		admin.Use(auth)
		{
			admin.POST("/users", can(rbac.OpCreateUser), d.authHandler.CreateUser)
			admin.GET("/users", can(rbac.OpListUsers), d.userHandler.ListUsers)
			admin.GET("/users/:id", can(rbac.OpViewUser), d.userHandler.GetUser)
			admin.GET("/developers", can(rbac.OpViewDevelopers), d.userHandler.ListDevelopers)
			admin.GET("/orders", can(rbac.OpListAllOrders), d.orderHandler.ListOrders)
		}
	}
}
