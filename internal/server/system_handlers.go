package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/prism/internal/database"
)

// SystemHandlers serves process and database health endpoints.
type SystemHandlers struct {
	log       zerolog.Logger
	databases []*database.DB
	startedAt time.Time
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(log zerolog.Logger, databases []*database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		databases: databases,
		startedAt: time.Now(),
	}
}

// HandleSystemStatus reports CPU, memory and uptime.
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	}

	if cpuPercent, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(cpuPercent) > 0 {
		status["cpu_percent"] = cpuPercent[0]
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		status["memory_percent"] = memStat.UsedPercent
		status["memory_used_mb"] = memStat.Used / 1024 / 1024
	}

	h.writeJSON(w, http.StatusOK, status)
}

// HandleDatabaseStats reports per-database file size and connectivity.
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := make([]map[string]interface{}, 0, len(h.databases))
	for _, db := range h.databases {
		if db == nil {
			continue
		}

		entry := map[string]interface{}{
			"name": db.Name(),
			"path": db.Path(),
		}

		if info, err := os.Stat(db.Path()); err == nil {
			entry["size_bytes"] = info.Size()
		}

		if err := db.Conn().Ping(); err != nil {
			entry["status"] = "error"
			entry["error"] = err.Error()
		} else {
			entry["status"] = "ok"
		}

		stats = append(stats, entry)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"databases": stats})
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
