// Package observability aggregates runtime counters for the debug surface.
package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Snapshot is the point-in-time view served by the debug endpoint.
type Snapshot struct {
	OnlineUsers      int     `json:"online_users"`
	DirectRouted     uint64  `json:"direct_routed"`
	RoomRouted       uint64  `json:"room_routed"`
	Delivered        uint64  `json:"delivered"`
	DeliveryFailures uint64  `json:"delivery_failures"`
	Rejected         uint64  `json:"rejected"`
	CPUPercent       float64 `json:"cpu_percent"`
	RSSBytes         uint64  `json:"rss_bytes"`
	AllocMemMb       uint64  `json:"alloc_mem_mb"`
	NumGC            uint32  `json:"num_gc"`
	UptimeSeconds    int64   `json:"uptime_seconds"`
}

// Stats collects counters from the router and registry. All increments are
// atomic; Snapshot is safe to call from the HTTP handler at any time.
type Stats struct {
	log     *slog.Logger
	proc    *process.Process
	started time.Time

	directRouted     atomic.Uint64
	roomRouted       atomic.Uint64
	delivered        atomic.Uint64
	deliveryFailures atomic.Uint64
	rejected         atomic.Uint64
}

func NewStats(log *slog.Logger) *Stats {
	// A missing process handle only disables self-stats, never the counters.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("process self-stats unavailable", "error", err)
		proc = nil
	}
	return &Stats{log: log, proc: proc, started: time.Now().UTC()}
}

func (s *Stats) IncrDirectRouted()     { s.directRouted.Add(1) }
func (s *Stats) IncrRoomRouted()       { s.roomRouted.Add(1) }
func (s *Stats) IncrDelivered()        { s.delivered.Add(1) }
func (s *Stats) IncrDeliveryFailures() { s.deliveryFailures.Add(1) }
func (s *Stats) IncrRejected()         { s.rejected.Add(1) }

// Snapshot combines the counters with Go memstats and, when available,
// OS-level process stats.
func (s *Stats) Snapshot(onlineUsers int) Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := Snapshot{
		OnlineUsers:      onlineUsers,
		DirectRouted:     s.directRouted.Load(),
		RoomRouted:       s.roomRouted.Load(),
		Delivered:        s.delivered.Load(),
		DeliveryFailures: s.deliveryFailures.Load(),
		Rejected:         s.rejected.Load(),
		AllocMemMb:       m.Alloc / 1024 / 1024,
		NumGC:            m.NumGC,
		UptimeSeconds:    int64(time.Since(s.started).Seconds()),
	}

	if s.proc != nil {
		if memInfo, err := s.proc.MemoryInfo(); err == nil {
			snap.RSSBytes = memInfo.RSS
		}
		if cpu, err := s.proc.CPUPercent(); err == nil {
			snap.CPUPercent = cpu
		}
	}
	return snap
}
