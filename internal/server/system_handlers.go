package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/saveur/storefront/internal/database"
)

// SystemHandlers serves device health endpoints for the storefront UI's
// status footer
type SystemHandlers struct {
	dataDir   string
	dbs       []*database.DB
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(dataDir string, log zerolog.Logger, dbs ...*database.DB) *SystemHandlers {
	return &SystemHandlers{
		dataDir:   dataDir,
		dbs:       dbs,
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
}

// SystemStatus is the device health snapshot
type SystemStatus struct {
	UptimeSeconds  int64              `json:"uptime_seconds"`
	CPUPercent     float64            `json:"cpu_percent"`
	MemUsedPercent float64            `json:"mem_used_percent"`
	DataDirMB      float64            `json:"data_dir_mb"`
	Databases      map[string]float64 `json:"databases_mb"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := SystemStatus{
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		DataDirMB:     h.dirSizeMB(h.dataDir),
		Databases:     make(map[string]float64),
	}

	// Short sample window: the UI polls this endpoint
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(cpuPercent) > 0 {
		status.CPUPercent = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
	} else {
		status.MemUsedPercent = memStat.UsedPercent
	}

	for _, db := range h.dbs {
		if info, err := os.Stat(db.Path()); err == nil {
			status.Databases[db.Name()] = float64(info.Size()) / 1024 / 1024
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": status,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// dirSizeMB calculates the total size of a directory in MB
func (h *SystemHandlers) dirSizeMB(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}
