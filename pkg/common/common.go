package common

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	code "github.com/chemstack/labstock/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

// Resp is the uniform reply envelope for every JSON endpoint.
type Resp struct {
	Code  *code.Code `json:"code"`
	Error *Error     `json:"error,omitempty"`
	Data  any        `json:"data,omitempty"`
}

// Reply writes data on success or the coded error otherwise. The data
// argument is variadic so handlers returning only an error can call
// Reply(ctx, err).
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	if len(data) > 0 {
		ReplyOk(ctx, data[0])
		return
	}
	ReplyOk(ctx, nil)
}

func ReplyOk(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, &Resp{Code: code.OK, Data: data})
}

func ReplyErr(ctx *gin.Context, err error) {
	c := code.From(err)
	ctx.JSON(c.Status(), &Resp{Code: c, Error: &Error{Msg: c.String()}})
}
