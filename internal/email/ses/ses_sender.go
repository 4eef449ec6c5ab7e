package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"portops/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendUrgeNotice(ctx context.Context, toEmail string, n port.UrgeNotice) error {
	subject := fmt.Sprintf("[Đôn đốc] %s - %s (%s)", n.ContainerNo, n.VesselName, n.VoyageNo)
	textBody := fmt.Sprintf(
		"Container %s on vessel %s (%s) is still waiting for customs clearance.\n"+
			"Carrier declaration: %s\nDetention expiry: %s\n\nPlease follow up with the consignee.",
		n.ContainerNo, n.VesselName, n.VoyageNo, orDash(n.TkNhaVC), orDash(n.DetExpiry))
	htmlBody := buildUrgeHTML(n)

	return s.send(ctx, []string{toEmail}, subject, htmlBody, textBody)
}

func (s *sesSender) SendExportPlanNotice(ctx context.Context, toEmails []string, n port.ExportPlanNotice) error {
	subject := fmt.Sprintf("[Kế hoạch xuất] %s (%s)", n.VesselName, n.VoyageNo)
	textBody := fmt.Sprintf(
		"Export plan for %s (%s)\nArrival: %s\nOperation: %s\nPlanned weight: %.2f t\nDepartments: %s",
		n.VesselName, n.VoyageNo, orDash(n.ArrivalTime), orDash(n.OperationTime),
		n.PlannedWeight, strings.Join(n.Departments, ", "))
	htmlBody := buildExportPlanHTML(n)

	return s.send(ctx, toEmails, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func buildUrgeHTML(n port.UrgeNotice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #b45309;">Customs follow-up required</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Container</td><td><strong>%s</strong></td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Vessel</td><td>%s (%s)</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Declaration</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Detention expiry</td><td>%s</td></tr>
  </table>
  <p>Please follow up with the consignee to complete the declaration.</p>
</body>
</html>`,
		html.EscapeString(n.ContainerNo), html.EscapeString(n.VesselName), html.EscapeString(n.VoyageNo),
		html.EscapeString(orDash(n.TkNhaVC)), html.EscapeString(orDash(n.DetExpiry)))
}

func buildExportPlanHTML(n port.ExportPlanNotice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #1d4ed8;">Export plan: %s (%s)</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Arrival</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Operation</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Planned weight</td><td>%.2f t</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Departments</td><td>%s</td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(n.VesselName), html.EscapeString(n.VoyageNo),
		html.EscapeString(orDash(n.ArrivalTime)), html.EscapeString(orDash(n.OperationTime)),
		n.PlannedWeight, html.EscapeString(strings.Join(n.Departments, ", ")))
}
