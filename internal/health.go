package internal

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/pkg"
)

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
	Version  string `json:"version,omitempty"`
}

// handleHealth reports readiness: 200 when both postgres and redis answer, 503 otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Postgres: "ok",
		Redis:    "ok",
		Version:  s.versionInfo,
	}

	var one int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		log.Warnf("health, postgres: %s", err)
		resp.Postgres = "down"
		resp.Status = "degraded"
	}
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		log.Warnf("health, redis: %s", err)
		resp.Redis = "down"
		resp.Status = "degraded"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, status, resp)
}
