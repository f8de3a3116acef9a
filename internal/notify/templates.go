package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/morphergyx/inquiry-api/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const timestampLayout = "02 Jan 2006 15:04 MST"

type inquiryView struct {
	ID          string
	Company     string
	Name        string
	Email       string
	Phone       string
	Interest    string
	Volume      string
	Message     string
	Priority    string
	SubmittedAt string
	PublicURL   string
}

func newInquiryView(inq *domain.Inquiry) inquiryView {
	view := inquiryView{
		ID:          inq.ID.String(),
		Company:     inq.Company,
		Name:        inq.Name,
		Email:       inq.Email,
		Phone:       inq.Phone,
		Interest:    string(inq.Interest),
		Message:     inq.Message,
		Priority:    strings.ToUpper(string(inq.Priority)),
		SubmittedAt: inq.CreatedAt.UTC().Format(timestampLayout),
	}
	if inq.Volume != nil && *inq.Volume > 0 {
		view.Volume = strconv.FormatFloat(*inq.Volume, 'f', -1, 64)
	}
	return view
}

// ConfirmationEmail is the acknowledgement sent to the submitter
func ConfirmationEmail(inq *domain.Inquiry, publicURL string) (Message, error) {
	view := newInquiryView(inq)
	view.PublicURL = publicURL

	html, err := render("confirmation.html", view)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      inq.Email,
		ToName:  inq.Name,
		Subject: "Thank You for Your Inquiry - Morphergyx LLP",
		Text: fmt.Sprintf("Dear %s,\n\nWe have received your inquiry for %s and our team will review it within 24 hours.\n\nMorphergyx LLP",
			inq.Name, inq.Interest),
		HTML: html,
	}, nil
}

// AdminAlertEmail tells the admin address about a new inquiry
func AdminAlertEmail(inq *domain.Inquiry, adminEmail string) (Message, error) {
	html, err := render("admin_alert.html", newInquiryView(inq))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("New Inquiry: %s - %s", inq.Company, inq.Interest),
		Text: fmt.Sprintf("New inquiry %s from %s (%s, %s) about %s.",
			inq.ID, inq.Company, inq.Name, inq.Email, inq.Interest),
		HTML: html,
	}, nil
}

type digestItem struct {
	Company  string
	Name     string
	Email    string
	Interest string
	Status   string
	Priority string
	Due      string
}

// FollowUpDigestEmail lists inquiries whose follow-up date has passed
func FollowUpDigestEmail(inquiries []domain.Inquiry, adminEmail string) (Message, error) {
	items := make([]digestItem, 0, len(inquiries))
	for _, inq := range inquiries {
		item := digestItem{
			Company:  inq.Company,
			Name:     inq.Name,
			Email:    inq.Email,
			Interest: string(inq.Interest),
			Status:   string(inq.Status),
			Priority: string(inq.Priority),
		}
		if inq.FollowUpDate != nil {
			item.Due = inq.FollowUpDate.UTC().Format(timestampLayout)
		}
		items = append(items, item)
	}

	html, err := render("follow_up_digest.html", struct{ Items []digestItem }{items})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("%d inquiries due for follow-up", len(items)),
		Text:    fmt.Sprintf("%d inquiries are due for follow-up.", len(items)),
		HTML:    html,
	}, nil
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
