package port

import "context"

// UrgeNotice asks the depot to chase a container's outstanding paperwork.
type UrgeNotice struct {
	VesselName  string
	VoyageNo    string
	ContainerNo string
	TkNhaVC     string
	DetExpiry   string
}

// ExportPlanNotice announces an outbound loading plan to departments.
type ExportPlanNotice struct {
	VesselName    string
	VoyageNo      string
	ArrivalTime   string
	OperationTime string
	PlannedWeight float64
	Departments   []string
}

// EmailSender defines the contract for sending operational notices.
type EmailSender interface {
	SendUrgeNotice(ctx context.Context, toEmail string, notice UrgeNotice) error
	SendExportPlanNotice(ctx context.Context, toEmails []string, notice ExportPlanNotice) error
}
