package handlers

import (
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// pushFlash queues a one-shot message on the requester's session, if one
// exists. Bearer-authenticated API clients have no session and no flash
// queue; for them this is a no-op.
func pushFlash(c *gin.Context, svc *sessions.Service, msg string) {
	tok := middleware.SessionToken(c)
	if tok == "" {
		return
	}
	if err := svc.PushFlash(c.Request.Context(), tok, msg); err != nil {
		logger.Warnf("failed to queue flash message: %v", err)
	}
}

// popFlashes drains the requester's flash queue for inclusion in a rendered
// view. Returns an empty slice when there is no session or no messages.
func popFlashes(c *gin.Context, svc *sessions.Service) []string {
	tok := middleware.SessionToken(c)
	if tok == "" {
		return []string{}
	}
	msgs, err := svc.PopFlashes(c.Request.Context(), tok)
	if err != nil {
		logger.Warnf("failed to pop flash messages: %v", err)
		return []string{}
	}
	if msgs == nil {
		return []string{}
	}
	return msgs
}
