package middleware

import (
	"net/http"

	"PairChat/tools/errs"

	"github.com/gin-gonic/gin"
)

// OK writes the uniform success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "ok", "data": data})
}

// Fail maps an error to its CodeError and writes the error envelope.
func Fail(c *gin.Context, err error) {
	ce := errs.CodeOf(err)
	c.JSON(http.StatusOK, ce)
}
