package api

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleExportCSV  godoc
//
//	@Summary		Export the current snapshot as CSV
//	@Description	Streams every peer of the latest snapshot as CSV rows
//	@Tags			export
//	@Produce		text/csv
//	@Success		200	{string}	string
//	@Router			/export/csv [get]
func (h *Handler) HandleExportCSV(c *gin.Context) {
	snap := h.snapshot(c.Request.Context())

	filename := fmt.Sprintf("peers-%s.csv", snap.CollectedAt.UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{
		"pubkey", "address", "version", "status", "last_seen",
		"cpu_percent", "ram_percent", "file_size", "uptime_seconds", "credits",
	})

	for _, p := range snap.Peers {
		row := []string{
			p.Pubkey,
			p.Address,
			p.Version,
			string(p.Status),
			time.Unix(p.LastSeenTimestamp, 0).UTC().Format(time.RFC3339),
			"", "", "", "", "",
		}
		if p.Telemetry != nil {
			row[5] = strconv.FormatFloat(p.Telemetry.CPUPercent, 'f', 2, 64)
			row[7] = strconv.FormatInt(p.Telemetry.FileSize, 10)
			row[8] = strconv.FormatInt(p.Telemetry.UptimeSeconds, 10)
		}
		if p.RAMPercent != nil {
			row[6] = strconv.FormatFloat(*p.RAMPercent, 'f', 2, 64)
		}
		if p.Credits != nil {
			row[9] = strconv.FormatInt(*p.Credits, 10)
		}
		w.Write(row)
	}
}
