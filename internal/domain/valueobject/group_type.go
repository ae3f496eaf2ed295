package valueobject

import "errors"

var (
	ErrInvalidGroupType = errors.New("invalid group type")
)

// GroupType はグループの種別を表す値オブジェクト
// "group"は複数ユーザーで共有する通常グループ、"user"はユーザー作成時に
// 暗黙的に作られる単一ユーザーグループ
type GroupType string

const (
	GroupTypeGroup GroupType = "group"
	GroupTypeUser  GroupType = "user"
)

// NewGroupType は文字列からGroupTypeを生成します
func NewGroupType(groupType string) (GroupType, error) {
	t := GroupType(groupType)
	if !t.IsValid() {
		return "", ErrInvalidGroupType
	}
	return t, nil
}

// IsValid は種別が有効かを判定します
func (t GroupType) IsValid() bool {
	switch t {
	case GroupTypeGroup, GroupTypeUser:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (t GroupType) String() string {
	return string(t)
}

// IsShared は複数ユーザーで共有する種別かを判定します
func (t GroupType) IsShared() bool {
	return t == GroupTypeGroup
}
