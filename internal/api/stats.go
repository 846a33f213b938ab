package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/dbpool"
	"github.com/waylog/waylog/internal/metrics"
)

// StatsHandler serves the journal statistics endpoint.
type StatsHandler struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(pool *dbpool.Pool, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{pool: pool, log: log}
}

// statsResponse is the JSON payload returned by the stats endpoint.
type statsResponse struct {
	Trips          int `json:"trips"`
	Locations      int `json:"locations"`
	Photos         int `json:"photos"`
	JournalEntries int `json:"journal_entries"`
	Tags           int `json:"tags"`
	Companions     int `json:"companions"`
	TripSeries     int `json:"trip_series"`
}

// GetStats handles GET /api/v1/stats. Returns aggregate journal statistics.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	userID := getUserID(c)
	if userID == "" {
		return
	}

	tx, err := h.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		h.log.WithError(err).Error("stats: begin tx")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	if _, err := tx.Exec(ctx, "SELECT set_config('app.user_id', $1, true)", userID); err != nil {
		h.log.WithError(err).Error("stats: set user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	var resp statsResponse

	// Single consolidated query for all user-scoped stats.
	if err := tx.QueryRow(ctx,
		`SELECT
			COUNT(*),
			(SELECT COUNT(*) FROM locations l JOIN trips t ON t.id = l.trip_id
				WHERE t.user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM photos p JOIN trips t ON t.id = p.trip_id
				WHERE t.user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM journal_entries j JOIN trips t ON t.id = j.trip_id
				WHERE t.user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM tags WHERE user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM companions WHERE user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM trip_series WHERE user_id = current_setting('app.user_id')::uuid)
		 FROM trips
		 WHERE user_id = current_setting('app.user_id')::uuid`,
	).Scan(
		&resp.Trips, &resp.Locations, &resp.Photos, &resp.JournalEntries,
		&resp.Tags, &resp.Companions, &resp.TripSeries,
	); err != nil {
		h.log.WithError(err).Error("stats: consolidated query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	// Update Prometheus gauges with fresh counts.
	metrics.TripCount.Set(float64(resp.Trips))
	metrics.JournalEntryCount.Set(float64(resp.JournalEntries))

	c.JSON(http.StatusOK, resp)
}
