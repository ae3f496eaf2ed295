package request

// CreateGroupRequest はグループ作成リクエストです
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Type        string `json:"type" validate:"omitempty,oneof=group user"`
}

// UpdateGroupRequest はグループ更新リクエストです
// 省略されたフィールドは変更しません
type UpdateGroupRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}
