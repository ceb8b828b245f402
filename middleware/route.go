package middleware

import (
	midsec "PairChat/middleware/security"
	"PairChat/tools/security"

	"github.com/gin-gonic/gin"
)

type RouteOpt struct {
	IsAuth bool
}

// POST registers a POST route, inserting the auth middleware when asked.
func POST(r gin.IRoutes, path string, jwt security.Options, handler gin.HandlerFunc, opt RouteOpt) {
	if opt.IsAuth {
		r.POST(path, midsec.Middleware(jwt), handler)
	} else {
		r.POST(path, handler)
	}
}

// GET registers a GET route, inserting the auth middleware when asked.
func GET(r gin.IRoutes, path string, jwt security.Options, handler gin.HandlerFunc, opt RouteOpt) {
	if opt.IsAuth {
		r.GET(path, midsec.Middleware(jwt), handler)
	} else {
		r.GET(path, handler)
	}
}
