package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleHistory  godoc
//
//	@Summary		Return historical peer rows
//	@Description	Queries the append-only history log by optional pubkey and time range (unix seconds); defaults to the last 24 hours
//	@Tags			history
//	@Produce		json
//	@Success		200	{array}	models.PeerRecord
//	@Failure		400	{string}	string
//	@Failure		500	{string}	string
//	@Router			/history [get]
func (h *Handler) HandleHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(503, gin.H{"error": "history storage is not configured"})
		return
	}

	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now

	if raw := c.Query("from"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid 'from' timestamp"})
			return
		}
		from = time.Unix(secs, 0)
	}
	if raw := c.Query("to"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid 'to' timestamp"})
			return
		}
		to = time.Unix(secs, 0)
	}

	rows, err := h.history.QueryPeerRange(c.Request.Context(), c.Query("pubkey"), from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, rows)
}
