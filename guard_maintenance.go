package goGuard

import (
	"context"
	"log"
	"strconv"
	"time"
)

// MaintenanceReport summarizes one [Guard.Maintain] pass.
type MaintenanceReport struct {
	History PurgeStats
	OTPs    int
}

// Maintain runs one retention sweep over both limiters and one expiry sweep
// over the OTP issuer. Expiry is also enforced lazily on access, so
// maintenance only bounds memory.
func (g *Guard) Maintain(ctx context.Context) MaintenanceReport {
	if !g.ready() {
		return MaintenanceReport{}
	}

	report := MaintenanceReport{
		History: g.PurgeStale(),
		OTPs:    g.PurgeExpiredOTPs(),
	}

	g.emitAudit(ctx, auditEventPurgeCompleted, true, "", "", "", "", func() map[string]string {
		return map[string]string{
			"history_entries": strconv.Itoa(report.History.Entries),
			"history_keys":    strconv.Itoa(report.History.Keys),
			"otps":            strconv.Itoa(report.OTPs),
		}
	})

	return report
}

// RunMaintenance calls Maintain every Maintenance.Interval until ctx is done
// or the Guard is closed. The Guard never starts this loop itself; hosts run
// it in their own goroutine.
func (g *Guard) RunMaintenance(ctx context.Context) error {
	if !g.ready() {
		return ErrGuardNotReady
	}

	ticker := time.NewTicker(g.config.Maintenance.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Print("goGuard: maintenance loop stopped: ", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if !g.ready() {
				log.Print("goGuard: maintenance loop stopped: guard closed")
				return ErrGuardNotReady
			}
			g.Maintain(ctx)
		}
	}
}
