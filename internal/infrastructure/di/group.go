package di

import (
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/internal/infrastructure/database"
	infraRepo "github.com/vcodigo/orderlist-api/internal/infrastructure/repository"
	groupcmd "github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	groupqry "github.com/vcodigo/orderlist-api/internal/usecase/group/query"
)

// GroupUseCases はGroup関連のUseCaseを保持します
type GroupUseCases struct {
	// Commands
	CreateGroup          *groupcmd.CreateGroupCommand
	UpdateGroup          *groupcmd.UpdateGroupCommand
	LeaveGroup           *groupcmd.LeaveGroupCommand
	RemoveUserFromGroups *groupcmd.RemoveUserFromGroupsCommand
	RemoveAllUserGroups  *groupcmd.RemoveAllUserGroupsCommand
	PurgeEmptyGroups     *groupcmd.PurgeEmptyGroupsCommand

	// Queries
	GetGroup       *groupqry.GetGroupQuery
	ListUserGroups *groupqry.ListUserGroupsQuery
}

// GroupRepositories はGroup関連のリポジトリを保持します
type GroupRepositories struct {
	GroupRepo     repository.GroupRepository
	UserGroupRepo repository.UserGroupRepository
}

// NewGroupRepositories は新しいGroupRepositoriesを作成します
func NewGroupRepositories(txManager *database.TxManager) *GroupRepositories {
	return &GroupRepositories{
		GroupRepo:     infraRepo.NewGroupRepository(txManager),
		UserGroupRepo: infraRepo.NewUserGroupRepository(txManager),
	}
}

// NewGroupUseCases は新しいGroupUseCasesを作成します
// userGroupsCacheはnil可（キャッシュなしで動作）
func NewGroupUseCases(repos *GroupRepositories, txManager repository.TransactionManager, userGroupsCache groupqry.UserGroupsCache) *GroupUseCases {
	removeUserFromGroups := groupcmd.NewRemoveUserFromGroupsCommand(repos.GroupRepo, repos.UserGroupRepo, txManager)

	return &GroupUseCases{
		// Commands
		CreateGroup:          groupcmd.NewCreateGroupCommand(repos.GroupRepo, repos.UserGroupRepo, txManager),
		UpdateGroup:          groupcmd.NewUpdateGroupCommand(repos.GroupRepo, repos.UserGroupRepo),
		LeaveGroup:           groupcmd.NewLeaveGroupCommand(repos.GroupRepo, repos.UserGroupRepo, txManager),
		RemoveUserFromGroups: removeUserFromGroups,
		RemoveAllUserGroups:  groupcmd.NewRemoveAllUserGroupsCommand(repos.GroupRepo, repos.UserGroupRepo, removeUserFromGroups),
		PurgeEmptyGroups:     groupcmd.NewPurgeEmptyGroupsCommand(repos.GroupRepo, txManager),

		// Queries
		GetGroup:       groupqry.NewGetGroupQuery(repos.GroupRepo, repos.UserGroupRepo),
		ListUserGroups: groupqry.NewListUserGroupsQuery(repos.GroupRepo, repos.UserGroupRepo, userGroupsCache),
	}
}
