package noop

import (
	"context"
	"log"
	"strings"

	"portops/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notices to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendUrgeNotice(_ context.Context, toEmail string, n port.UrgeNotice) error {
	log.Printf("[NOOP EMAIL] Urge notice to %s: container %s on %s (%s), declaration %q, expiry %s",
		toEmail, n.ContainerNo, n.VesselName, n.VoyageNo, n.TkNhaVC, n.DetExpiry)
	return nil
}

func (s *noopSender) SendExportPlanNotice(_ context.Context, toEmails []string, n port.ExportPlanNotice) error {
	log.Printf("[NOOP EMAIL] Export plan to %s: %s (%s) arrival %s, operation %s, %.2f t, departments %s",
		strings.Join(toEmails, ","), n.VesselName, n.VoyageNo, n.ArrivalTime, n.OperationTime,
		n.PlannedWeight, strings.Join(n.Departments, ","))
	return nil
}
