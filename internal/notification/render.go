package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

var customerEmailTmpl = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Booking Confirmed</h2>
  <p>Dear {{.Name}},</p>
  <p>Your appointment at {{.ClinicName}} has been successfully booked.</p>
  <table cellpadding="6">
    <tr><td><strong>Confirmation #</strong></td><td>{{.Confirmation}}</td></tr>
    <tr><td><strong>Services</strong></td><td>{{.ServiceList}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.When}}</td></tr>
  </table>
  <p>Questions? Call us at {{.ClinicPhone}}.</p>
  <p>We look forward to seeing you.</p>
</body>
</html>`))

var operatorEmailTmpl = template.Must(template.New("operator").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New Booking {{.Confirmation}}</h2>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
    <tr><td><strong>Services</strong></td><td>{{.ServiceList}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.When}}</td></tr>
    {{if .Note}}<tr><td><strong>Message</strong></td><td>{{.Note}}</td></tr>{{end}}
  </table>
</body>
</html>`))

func render(t *template.Template, m Message) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func CustomerEmail(m Message) (subject, html string, err error) {
	html, err = render(customerEmailTmpl, m)
	return fmt.Sprintf("Booking Confirmed - %s", m.Confirmation), html, err
}

func OperatorEmail(m Message) (subject, html string, err error) {
	html, err = render(operatorEmailTmpl, m)
	return fmt.Sprintf("New Booking %s - %s", m.Confirmation, m.Name), html, err
}

func WhatsAppText(m Message) string {
	return fmt.Sprintf(`*Booking Confirmed - %s*

Dear %s,

Your appointment has been successfully booked!

*Booking Details:*
• Confirmation #: %s
• Service: %s
• Date: %s
• Time: %s

Questions? Call us at: %s`,
		m.ClinicName, m.Name, m.Confirmation, m.ServiceList(), m.Date, m.When(), m.ClinicPhone)
}

func OperatorText(m Message) string {
	text := fmt.Sprintf(`New booking %s
Name: %s
Phone: %s
Email: %s
Services: %s
Date: %s %s`,
		m.Confirmation, m.Name, m.Phone, m.Email, m.ServiceList(), m.Date, m.When())
	if m.Note != "" {
		text += "\nMessage: " + m.Note
	}
	return text
}
