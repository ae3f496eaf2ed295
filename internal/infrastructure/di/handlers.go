package di

import (
	"github.com/vcodigo/orderlist-api/internal/interface/handler"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/query"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health *handler.HealthHandler
	Group  *handler.GroupHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	// Group Handler
	var userGroupsCache query.UserGroupsCache
	if c.GroupCache != nil {
		userGroupsCache = c.GroupCache
	}

	groupHandler := handler.NewGroupHandler(
		c.Group.CreateGroup,
		c.Group.UpdateGroup,
		c.Group.LeaveGroup,
		c.Group.RemoveAllUserGroups,
		c.Group.GetGroup,
		c.Group.ListUserGroups,
		userGroupsCache,
	)

	return &Handlers{
		Health: healthHandler,
		Group:  groupHandler,
	}
}
