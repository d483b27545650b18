// Package httpapi serves a local debug endpoint exposing the display
// state, configuration and journal tail. It is read-only and intended for
// bring-up and field diagnosis, not for remote control of the display.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bnema/evsd/internal/display"
	"github.com/bnema/evsd/internal/journal"
	"github.com/bnema/evsd/internal/logging"
)

type API struct {
	svc *display.Service
	jnl *journal.Journal
}

// NewRouter builds the debug router. jnl may be nil when the journal is
// disabled.
func NewRouter(svc *display.Service, jnl *journal.Journal, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		ctx := logging.WithContext(c.Request.Context(), log)
		c.Request = c.Request.WithContext(logging.WithComponent(ctx, "httpapi"))
		c.Next()
	})

	api := &API{svc: svc, jnl: jnl}

	r.GET("/healthz", api.healthz)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/display", api.getDisplay)
		v1.GET("/journal", api.getJournal)
	}
	return r
}

func (a *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) getDisplay(c *gin.Context) {
	resp := gin.H{
		"info":  a.svc.DisplayInfo(),
		"state": a.svc.DisplayState().String(),
	}

	// Config is only known once the backend claimed its surface or layer.
	if mode, stateInfo, err := a.svc.DisplayConfig(); err == nil {
		resp["mode"] = mode
		resp["layer"] = stateInfo
	}

	c.JSON(http.StatusOK, resp)
}

func (a *API) getJournal(c *gin.Context) {
	if a.jnl == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "journal disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid limit"})
		return
	}

	events, err := a.jnl.Tail(c.Request.Context(), limit)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("journal tail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
