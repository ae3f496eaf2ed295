package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vcodigo/orderlist-api/internal/interface/dto/request"
	"github.com/vcodigo/orderlist-api/internal/interface/dto/response"
	"github.com/vcodigo/orderlist-api/internal/interface/middleware"
	"github.com/vcodigo/orderlist-api/internal/interface/presenter"
	groupcmd "github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	groupqry "github.com/vcodigo/orderlist-api/internal/usecase/group/query"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
	"github.com/vcodigo/orderlist-api/pkg/logger"
)

// GroupHandler はグループ関連のHTTPハンドラーです
type GroupHandler struct {
	// Commands
	createGroupCmd         *groupcmd.CreateGroupCommand
	updateGroupCmd         *groupcmd.UpdateGroupCommand
	leaveGroupCmd          *groupcmd.LeaveGroupCommand
	removeAllUserGroupsCmd *groupcmd.RemoveAllUserGroupsCommand

	// Queries
	getGroupQuery       *groupqry.GetGroupQuery
	listUserGroupsQuery *groupqry.ListUserGroupsQuery

	// キャッシュ無効化（nil可）
	userGroupsCache groupqry.UserGroupsCache
}

// NewGroupHandler は新しいGroupHandlerを作成します
func NewGroupHandler(
	createGroupCmd *groupcmd.CreateGroupCommand,
	updateGroupCmd *groupcmd.UpdateGroupCommand,
	leaveGroupCmd *groupcmd.LeaveGroupCommand,
	removeAllUserGroupsCmd *groupcmd.RemoveAllUserGroupsCommand,
	getGroupQuery *groupqry.GetGroupQuery,
	listUserGroupsQuery *groupqry.ListUserGroupsQuery,
	userGroupsCache groupqry.UserGroupsCache,
) *GroupHandler {
	return &GroupHandler{
		createGroupCmd:         createGroupCmd,
		updateGroupCmd:         updateGroupCmd,
		leaveGroupCmd:          leaveGroupCmd,
		removeAllUserGroupsCmd: removeAllUserGroupsCmd,
		getGroupQuery:          getGroupQuery,
		listUserGroupsQuery:    listUserGroupsQuery,
		userGroupsCache:        userGroupsCache,
	}
}

// CreateGroup はグループを作成します
// POST /groups
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperror.NewUnauthorizedError("missing user identity")
	}

	var req request.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.createGroupCmd.Execute(c.Request().Context(), groupcmd.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatorID:   userID,
	})
	if err != nil {
		return err
	}

	h.invalidateUserGroups(c, userID)

	return presenter.Created(c, response.ToGroupWithUserGroupResponse(output.Group, output.UserGroup, 1))
}

// ListMyGroups はユーザーが所属するグループ一覧を取得します
// GET /groups
func (h *GroupHandler) ListMyGroups(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperror.NewUnauthorizedError("missing user identity")
	}

	output, err := h.listUserGroupsQuery.Execute(c.Request().Context(), groupqry.ListUserGroupsInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupListResponse(output.Groups))
}

// GetGroup はグループを取得します
// GET /groups/:id
func (h *GroupHandler) GetGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperror.NewUnauthorizedError("missing user identity")
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid group ID", nil)
	}

	output, err := h.getGroupQuery.Execute(c.Request().Context(), groupqry.GetGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupWithUserGroupResponse(output.Group, output.UserGroup, output.MemberCount))
}

// UpdateGroup はグループの名前・説明を更新します（管理者のみ）
// PUT /groups/:id
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperror.NewUnauthorizedError("missing user identity")
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid group ID", nil)
	}

	var req request.UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.updateGroupCmd.Execute(c.Request().Context(), groupcmd.UpdateGroupInput{
		GroupID:     groupID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	h.invalidateUserGroups(c, userID)

	return presenter.OK(c, response.ToGroupResponse(output.Group))
}

// LeaveGroup はグループから退出します
// POST /groups/:id/leave
func (h *GroupHandler) LeaveGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperror.NewUnauthorizedError("missing user identity")
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid group ID", nil)
	}

	output, err := h.leaveGroupCmd.Execute(c.Request().Context(), groupcmd.LeaveGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	h.invalidateUserGroups(c, userID)

	return presenter.OK(c, response.LeaveGroupResponse{
		LeftGroupID:  output.LeftGroupID,
		GroupDeleted: output.GroupDeleted,
	})
}

// RemoveAllUserGroups は指定ユーザーの全メンバーシップをカスケード解決します
// ユーザー削除時に上流サービスから呼ばれます
// DELETE /users/:userId/groups
func (h *GroupHandler) RemoveAllUserGroups(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	output, err := h.removeAllUserGroupsCmd.ExecuteAll(c.Request().Context(), groupcmd.RemoveAllUserGroupsInput{
		UserID: targetUserID,
	})
	if err != nil {
		return err
	}

	h.invalidateUserGroups(c, targetUserID)
	// 昇格されたメンバーの一覧キャッシュも古くなる
	for _, ug := range output.UsersGroupsSetAsAdmin {
		h.invalidateUserGroups(c, ug.UserID)
	}

	return presenter.OK(c, response.ToCascadeResponse(output))
}

// invalidateUserGroups はユーザーの所属グループ一覧キャッシュを破棄します
// キャッシュ障害はレスポンスに影響させません
func (h *GroupHandler) invalidateUserGroups(c echo.Context, userID uuid.UUID) {
	if h.userGroupsCache == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.userGroupsCache.InvalidateUserGroups(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to invalidate user groups cache", "user_id", userID, "error", err)
	}
}
