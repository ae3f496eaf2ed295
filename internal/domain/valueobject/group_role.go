package valueobject

import "errors"

var (
	ErrInvalidGroupRole = errors.New("invalid group role")
	ErrEmptyGroupRoles  = errors.New("membership must hold at least one role")
)

// GroupRole はグループ内のメンバーシップロールを表す値オブジェクト
type GroupRole string

const (
	GroupRoleAdmin GroupRole = "admin"
	GroupRoleUser  GroupRole = "user"
)

// NewGroupRole は文字列からGroupRoleを生成します
func NewGroupRole(role string) (GroupRole, error) {
	r := GroupRole(role)
	if !r.IsValid() {
		return "", ErrInvalidGroupRole
	}
	return r, nil
}

// IsValid はロールが有効かを判定します
func (r GroupRole) IsValid() bool {
	switch r {
	case GroupRoleAdmin, GroupRoleUser:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (r GroupRole) String() string {
	return string(r)
}

// IsAdmin は管理者ロールかを判定します
func (r GroupRole) IsAdmin() bool {
	return r == GroupRoleAdmin
}

// NewGroupRoles は文字列スライスからロールセットを生成します
// 順序を保持し、空のセットは許可しません
func NewGroupRoles(roles []string) ([]GroupRole, error) {
	if len(roles) == 0 {
		return nil, ErrEmptyGroupRoles
	}

	result := make([]GroupRole, 0, len(roles))
	for _, role := range roles {
		r, err := NewGroupRole(role)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// GroupRolesToStrings はロールセットを文字列スライスに変換します
func GroupRolesToStrings(roles []GroupRole) []string {
	result := make([]string, len(roles))
	for i, r := range roles {
		result[i] = r.String()
	}
	return result
}
