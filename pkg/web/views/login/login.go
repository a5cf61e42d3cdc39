package login

import (
	// 外部依赖
	"strings"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	coreAccount "github.com/chemstack/labstock/pkg/core/account"
	accountImpl "github.com/chemstack/labstock/pkg/core/account/account"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
)

type Handle struct{ svc coreAccount.Service }

func NewHandle() *Handle { return &Handle{svc: accountImpl.New()} }

func (h *Handle) Login(ctx *gin.Context) {
	in := &coreAccount.LoginReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Login(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Register(ctx *gin.Context) {
	in := &coreAccount.RegisterReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Register(ctx, in)
	common.Reply(ctx, err, resp)
}

// Logout revokes the presented token. A missing or already dead token is
// still a successful logout.
func (h *Handle) Logout(ctx *gin.Context) {
	raw := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	common.Reply(ctx, h.svc.Logout(ctx, raw))
}

func (h *Handle) Me(ctx *gin.Context) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		common.ReplyErr(ctx, code.UnLogin)
		return
	}
	common.ReplyOk(ctx, user)
}
