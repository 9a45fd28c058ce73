package api

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/rekog/internal/rekogbot"
	"github.com/naseer2426/rekog/internal/settings"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type RewriteRequest struct {
	Message *string `json:"message" binding:"required"`
}

type RewriteResponse struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"`
}

type Rewrite struct {
	Bot *rekogbot.Bot
}

// Rewrite runs one message through the rewriter. The handler always answers
// with a message, the original one when nothing matched.
func (r *Rewrite) Rewrite(c *gin.Context) {
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, changed := r.Bot.HandleMessage(c.Request.Context(), requestid.Get(c), &rekogbot.Message{Text: *req.Message})
	if !changed {
		out = *req.Message
	}
	c.JSON(http.StatusOK, RewriteResponse{Message: out, Changed: changed})
}

type OptionValue struct {
	settings.Option
	Value string `json:"value"`
}

type SetOptionRequest struct {
	Value *string `json:"value" binding:"required"`
}

type Settings struct {
	Store settings.Store
}

func (s *Settings) List(c *gin.Context) {
	out := make([]OptionValue, 0, len(settings.Options))
	for _, opt := range settings.Options {
		v, err := settings.Value(s.Store, opt.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, OptionValue{Option: opt, Value: v})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Settings) Set(c *gin.Context) {
	opt, ok := settings.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown option"})
		return
	}

	var req SetOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Store.Set(opt.Name, *req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OptionValue{Option: opt, Value: *req.Value})
}
