package user

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	coreAccount "github.com/chemstack/labstock/pkg/core/account"
	accountImpl "github.com/chemstack/labstock/pkg/core/account/account"
)

type Handle struct{ svc coreAccount.Service }

func NewHandle() *Handle { return &Handle{svc: accountImpl.New()} }

func (h *Handle) List(ctx *gin.Context) {
	resp, err := h.svc.ListUsers(ctx)
	common.Reply(ctx, err, resp)
}

func (h *Handle) SetRole(ctx *gin.Context) {
	in := &coreAccount.SetRoleReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, h.svc.SetRole(ctx, in))
}
