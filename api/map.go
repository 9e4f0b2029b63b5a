package api

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/xandnet/peerwatch/models"
)

// HandleMap  godoc
//
//	@Summary		Return peers prepared for map display
//	@Description	Joins the latest snapshot with geolocation; peers whose IP cannot be resolved are skipped
//	@Tags			map
//	@Produce		json
//	@Success		200	{array}	models.MapNode
//	@Router			/map [get]
func (h *Handler) HandleMap(c *gin.Context) {
	if h.geo == nil {
		c.JSON(503, gin.H{"error": "geolocation is not configured"})
		return
	}

	snap := h.snapshot(c.Request.Context())

	nodes := make([]models.MapNode, 0, len(snap.Peers))
	for _, p := range snap.Peers {
		host := p.Host()
		if net.ParseIP(host) == nil {
			// Hostname seeds resolve through DNS; the map only
			// plots literal IPs.
			continue
		}

		loc, err := h.geo.Lookup(c.Request.Context(), host)
		if err != nil {
			zlog.Sugar().Debugf("geo lookup failed for %s: %v", host, err)
			continue
		}

		nodes = append(nodes, models.MapNode{
			Pubkey:      p.Pubkey,
			Address:     p.Address,
			Status:      p.Status,
			Country:     loc.Country,
			City:        loc.City,
			Coordinates: []float64{loc.Lon, loc.Lat},
		})
	}

	c.JSON(200, nodes)
}
