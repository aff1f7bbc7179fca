package notify

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
)

var pickupTemplate = template.Must(template.New("pickup").Parse(pickupHTML))

type pickupData struct {
	CustomerName string
	OrderNumber  string
	StoreName    string
	StorePhone   string
}

func renderPickup(n PickupNotice) (string, error) {
	data := pickupData{
		CustomerName: n.CustomerName,
		OrderNumber:  n.OrderNumber,
		StoreName:    n.StoreName,
		StorePhone:   n.StorePhone,
	}
	if data.CustomerName == "" {
		data.CustomerName = "Valued Customer"
	}
	if data.StoreName == "" {
		data.StoreName = "The Laundry Team"
	}

	var buf bytes.Buffer
	if err := pickupTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "render pickup email")
	}
	return buf.String(), nil
}

const pickupHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Your Laundry is Ready</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; border-collapse: collapse;">
        <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: #ffffff; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
                <h1 style="margin: 0;">Your Laundry is Ready!</h1>
            </td>
        </tr>
        <tr>
            <td style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
                <p>Dear {{.CustomerName}},</p>
                <p>Great news! Your order is now ready for pickup.</p>
                <p style="font-size: 24px; font-weight: bold; color: #667eea;">Order: {{.OrderNumber}}</p>
                <p>Please visit our store during business hours to collect your items.</p>
                <p>Best regards,<br>{{.StoreName}}</p>
            </td>
        </tr>
        <tr>
            <td style="text-align: center; padding-top: 20px; color: #888; font-size: 12px;">
                {{if .StorePhone}}<p>Questions? Call us on {{.StorePhone}}.</p>{{else}}<p>If you have any questions, please contact us.</p>{{end}}
            </td>
        </tr>
    </table>
</body>
</html>
`
