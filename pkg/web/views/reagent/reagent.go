package reagent

import (
	// 外部依赖
	"fmt"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	coreInventory "github.com/chemstack/labstock/pkg/core/inventory"
	inventoryImpl "github.com/chemstack/labstock/pkg/core/inventory/inventory"
)

type Handle struct{ svc coreInventory.Service }

func NewHandle() *Handle { return &Handle{svc: inventoryImpl.New()} }

func (h *Handle) Add(ctx *gin.Context) {
	in := &coreInventory.AddReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Add(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Query(ctx *gin.Context) {
	in := &coreInventory.QueryReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Query(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Query("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg("uuid is malformed"))
		return
	}
	resp, err := h.svc.Get(ctx, id)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Update(ctx *gin.Context) {
	in := &coreInventory.UpdateReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, h.svc.Update(ctx, in))
}

func (h *Handle) Delete(ctx *gin.Context) {
	in := &coreInventory.DeleteReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, h.svc.Delete(ctx, in))
}

func (h *Handle) Consume(ctx *gin.Context) {
	in := &coreInventory.ConsumeReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Consume(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Expiring(ctx *gin.Context) {
	in := &coreInventory.ExpiringReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Expiring(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Usage(ctx *gin.Context) {
	resp, err := h.svc.Usage(ctx)
	common.Reply(ctx, err, resp)
}

func (h *Handle) DeleteAll(ctx *gin.Context) {
	common.Reply(ctx, h.svc.DeleteAll(ctx))
}

// Import replaces the whole inventory with the uploaded csv or xlsx file.
func (h *Handle) Import(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg("file is required"))
		return
	}
	f, err := file.Open()
	if err != nil {
		common.ReplyErr(ctx, code.ImportErr.WithErr(err))
		return
	}
	defer f.Close()

	resp, err := h.svc.Import(ctx, &coreInventory.ImportReq{
		Filename: file.Filename,
		Reader:   f,
	})
	common.Reply(ctx, err, resp)
}

func (h *Handle) Export(ctx *gin.Context) {
	in := &coreInventory.ExportReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Export(ctx, in)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	writeFile(ctx, resp)
}

func (h *Handle) ExportUsage(ctx *gin.Context) {
	in := &coreInventory.ExportReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.ExportUsage(ctx, in)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	writeFile(ctx, resp)
}

func (h *Handle) QueryCAS(ctx *gin.Context) {
	in := &coreInventory.CasReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.QueryCAS(ctx, in)
	common.Reply(ctx, err, resp)
}

func writeFile(ctx *gin.Context, resp *coreInventory.ExportResp) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	ctx.Data(200, resp.ContentType, resp.Content)
}
