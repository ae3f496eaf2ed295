package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/query"
)

// GroupResponse はグループレスポンスです
type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserGroupResponse はメンバーシップレスポンスです
type UserGroupResponse struct {
	GroupID  uuid.UUID `json:"group_id"`
	UserID   uuid.UUID `json:"user_id"`
	Roles    []string  `json:"roles"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupWithUserGroupResponse はグループとメンバーシップを結合したレスポンスです
type GroupWithUserGroupResponse struct {
	Group       GroupResponse     `json:"group"`
	UserGroup   UserGroupResponse `json:"user_group"`
	MemberCount int               `json:"member_count,omitempty"`
}

// GroupListResponse はグループ一覧レスポンスです
type GroupListResponse struct {
	Groups []GroupWithUserGroupResponse `json:"groups"`
}

// LeaveGroupResponse はグループ退出レスポンスです
type LeaveGroupResponse struct {
	LeftGroupID  uuid.UUID `json:"left_group_id"`
	GroupDeleted bool      `json:"group_deleted"`
}

// CascadeResponse はカスケード解決の集計レスポンスです
type CascadeResponse struct {
	Pages                 int                 `json:"pages"`
	GroupsRemoved         []GroupResponse     `json:"groups_removed"`
	UsersGroupsRemoved    []UserGroupResponse `json:"users_groups_removed"`
	UsersGroupsSetAsAdmin []UserGroupResponse `json:"users_groups_set_as_admin"`
}

// ToGroupResponse はグループエンティティをレスポンスに変換します
func ToGroupResponse(group *entity.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Name:        group.Name.String(),
		Description: group.Description,
		Type:        group.Type.String(),
		CreatedAt:   group.CreatedAt,
	}
}

// ToUserGroupResponse はメンバーシップエンティティをレスポンスに変換します
func ToUserGroupResponse(userGroup *entity.UserGroup) UserGroupResponse {
	return UserGroupResponse{
		GroupID:  userGroup.GroupID,
		UserID:   userGroup.UserID,
		Roles:    valueobject.GroupRolesToStrings(userGroup.Roles),
		JoinedAt: userGroup.JoinedAt,
	}
}

// ToGroupWithUserGroupResponse はグループとメンバーシップの結合レスポンスを作成します
func ToGroupWithUserGroupResponse(group *entity.Group, userGroup *entity.UserGroup, memberCount int) GroupWithUserGroupResponse {
	return GroupWithUserGroupResponse{
		Group:       ToGroupResponse(group),
		UserGroup:   ToUserGroupResponse(userGroup),
		MemberCount: memberCount,
	}
}

// ToGroupListResponse はグループ一覧レスポンスを作成します
func ToGroupListResponse(groups []*query.GroupWithUserGroup) GroupListResponse {
	result := make([]GroupWithUserGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, ToGroupWithUserGroupResponse(g.Group, g.UserGroup, 0))
	}
	return GroupListResponse{Groups: result}
}

// ToCascadeResponse はカスケード集計結果をレスポンスに変換します
func ToCascadeResponse(output *command.RemoveAllUserGroupsOutput) CascadeResponse {
	groupsRemoved := make([]GroupResponse, 0, len(output.GroupsRemoved))
	for _, g := range output.GroupsRemoved {
		groupsRemoved = append(groupsRemoved, ToGroupResponse(g))
	}

	removed := make([]UserGroupResponse, 0, len(output.UsersGroupsRemoved))
	for _, ug := range output.UsersGroupsRemoved {
		removed = append(removed, ToUserGroupResponse(ug))
	}

	promoted := make([]UserGroupResponse, 0, len(output.UsersGroupsSetAsAdmin))
	for _, ug := range output.UsersGroupsSetAsAdmin {
		promoted = append(promoted, ToUserGroupResponse(ug))
	}

	return CascadeResponse{
		Pages:                 output.Pages,
		GroupsRemoved:         groupsRemoved,
		UsersGroupsRemoved:    removed,
		UsersGroupsSetAsAdmin: promoted,
	}
}
