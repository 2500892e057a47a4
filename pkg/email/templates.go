package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// InquiryEmailData holds the data for contact form emails
type InquiryEmailData struct {
	CompanyName  string // Firm name used in headings and sign-offs
	FirstName    string
	LastName     string
	Email        string
	Company      string
	ServiceLabel string
	Message      string
	SubmittedAt  string
}

const notificationText = `New Contact Form Submission - {{.CompanyName}}

Contact Information:
Name: {{.FirstName}} {{.LastName}}
Email: {{.Email}}
Company: {{.Company}}
Service Interest: {{.ServiceLabel}}

Message:
{{.Message}}

Submitted at: {{.SubmittedAt}}
`

// notificationHTML is the HTML template for the operator notification
const notificationHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1e3a5f; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #1e3a5f; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission - {{.CompanyName}}</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Name:</div>
                <div class="value">{{.FirstName}} {{.LastName}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value">{{.Email}}</div>
            </div>
            <div class="field">
                <div class="label">Company:</div>
                <div class="value">{{.Company}}</div>
            </div>
            <div class="field">
                <div class="label">Service Interest:</div>
                <div class="value">{{.ServiceLabel}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Submitted at: {{.SubmittedAt}}</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`

const acknowledgmentText = `Dear {{.FirstName}},

Thank you for your interest in {{.CompanyName}}. We have received your inquiry regarding {{.ServiceLabel}}.

Our team will review your message and get back to you within 24 hours with more information about how we can help with your hiring needs.

Best regards,
The {{.CompanyName}} Team
`

const acknowledgmentHTML = `<p>Dear {{.FirstName}},</p>
<p>Thank you for your interest in <strong>{{.CompanyName}}</strong>. We have received your inquiry regarding <strong>{{.ServiceLabel}}</strong>.</p>
<p>Our team will review your message and get back to you within 24 hours with more information about how we can help with your hiring needs.</p>
<p>Best regards,<br>The {{.CompanyName}} Team</p>`

var (
	notificationTextTmpl   = texttemplate.Must(texttemplate.New("notification.txt").Parse(notificationText))
	notificationHTMLTmpl   = htmltemplate.Must(htmltemplate.New("notification.html").Parse(notificationHTML))
	acknowledgmentTextTmpl = texttemplate.Must(texttemplate.New("acknowledgment.txt").Parse(acknowledgmentText))
	acknowledgmentHTMLTmpl = htmltemplate.Must(htmltemplate.New("acknowledgment.html").Parse(acknowledgmentHTML))
)

// RenderNotification renders the operator notification bodies
func RenderNotification(data InquiryEmailData) (text, html string, err error) {
	return render(data, notificationTextTmpl, notificationHTMLTmpl)
}

// RenderAcknowledgment renders the auto-reply bodies sent to the submitter
func RenderAcknowledgment(data InquiryEmailData) (text, html string, err error) {
	return render(data, acknowledgmentTextTmpl, acknowledgmentHTMLTmpl)
}

func render(data InquiryEmailData, textTmpl *texttemplate.Template, htmlTmpl *htmltemplate.Template) (string, string, error) {
	var textBody, htmlBody bytes.Buffer
	if err := textTmpl.Execute(&textBody, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s template: %w", textTmpl.Name(), err)
	}
	if err := htmlTmpl.Execute(&htmlBody, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s template: %w", htmlTmpl.Name(), err)
	}
	return textBody.String(), htmlBody.String(), nil
}
