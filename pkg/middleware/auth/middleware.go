package auth

import (
	// 外部依赖
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	model "github.com/chemstack/labstock/pkg/model"
)

// Auth validates the bearer token and stores the user on the context.
func Auth() func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			abort(ctx, http.StatusUnauthorized, code.UnLogin)
			return
		}

		tokens := strings.Split(authHeader, " ")
		if len(tokens) != 2 || !strings.EqualFold(tokens[0], "Bearer") {
			abort(ctx, http.StatusUnauthorized, code.LoginFormatErr)
			return
		}

		claims, err := ParseToken(ctx, tokens[1])
		if err != nil {
			abort(ctx, http.StatusUnauthorized, code.InvalidToken)
			return
		}

		ctx.Set(USERKEY, &model.UserData{Username: claims.Username, Role: claims.Role})
		ctx.Next()
	}
}

// RequireAdmin gates destructive and administrative operations. A non-admin
// gets PermissionDenied; the operation is unavailable, not merely hidden.
func RequireAdmin() func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		if !GetCurrentUser(ctx).IsAdmin() {
			abort(ctx, http.StatusForbidden, code.PermissionDenied)
			return
		}
		ctx.Next()
	}
}

func abort(ctx *gin.Context, status int, c *code.Code) {
	ctx.JSON(status, &common.Resp{
		Code:  c,
		Error: &common.Error{Msg: c.String()},
	})
	ctx.Abort()
}
