package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vcodigo/orderlist-api/pkg/apperror"
	"github.com/vcodigo/orderlist-api/pkg/logger"
)

const (
	HeaderUserID     = "X-User-ID"
	ContextKeyUserID = "user_id"
)

// Identity は上流ゲートウェイが付与するユーザーIDヘッダーを検証して
// コンテキストに設定するミドルウェアを返します
// 認証自体はゲートウェイの責務であり、ここではヘッダーの形式のみ検証します
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				return apperror.NewUnauthorizedError("missing user identity")
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid user identity")
			}

			c.Set(ContextKeyUserID, userID)

			// ログ相関用にリクエストコンテキストにも載せる
			ctx := logger.ContextWithUserID(c.Request().Context(), userID.String())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	if id, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}
