package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vcodigo/orderlist-api/internal/infrastructure/di"
	"github.com/vcodigo/orderlist-api/internal/interface/middleware"
	"github.com/vcodigo/orderlist-api/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo     *echo.Echo
	handlers *di.Handlers
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers) *Router {
	return &Router{
		echo:     e,
		handlers: handlers,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	// Debug route
	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "OrderList API v1",
		})
	})

	r.setupGroupRoutes(api)
	r.setupUserRoutes(api)
}

// setupGroupRoutes はグループ関連ルートを設定します
func (r *Router) setupGroupRoutes(api *echo.Group) {
	if r.handlers.Group == nil {
		return
	}

	// Group routes (identity via gateway header)
	groupsGroup := api.Group("/groups", middleware.Identity())
	groupsGroup.POST("", r.handlers.Group.CreateGroup)
	groupsGroup.GET("", r.handlers.Group.ListMyGroups)
	groupsGroup.GET("/:id", r.handlers.Group.GetGroup)
	groupsGroup.PUT("/:id", r.handlers.Group.UpdateGroup)
	groupsGroup.POST("/:id/leave", r.handlers.Group.LeaveGroup)
}

// setupUserRoutes はユーザー関連ルートを設定します
// ユーザー削除時のカスケード解決は上流サービスから呼ばれる内部ルートです
func (r *Router) setupUserRoutes(api *echo.Group) {
	if r.handlers.Group == nil {
		return
	}

	usersGroup := api.Group("/users")
	usersGroup.DELETE("/:userId/groups", r.handlers.Group.RemoveAllUserGroups)
}
