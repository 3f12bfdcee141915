// Package billing renders patient bills and prescriptions as fixed-width
// 60-column text documents.
//
// Rendering is pure: every input, including the generation time, lives on
// the Patient snapshot, so the same snapshot always produces the same bytes.
package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	width      = 60
	nameCol    = 35
	amountCol  = 20
	timeLayout = "02-01-2006 03:04 PM"

	defaultClinicName = "Reimagine Hair Transplant & Skin Care Clinic"
)

// PatientType distinguishes pricing rules on a bill.
type PatientType string

// Patient types.
const (
	TypeNormal PatientType = "Normal"
	TypeVIP    PatientType = "VIP"
)

// Line is one treatment charged on a bill. The price starts from the catalog
// default and may be overridden per bill without touching the catalog.
type Line struct {
	Name  string
	Price int
}

// Patient is one bill's worth of input, fixed at generation time. It is
// never persisted; only its rendered text reaches disk.
type Patient struct {
	Name         string
	Phone        string
	Type         PatientType
	VIPDiscount  int // percent, meaningful only for VIP patients
	Lines        []Line
	Prescription string
	GeneratedAt  time.Time
}

// Total is the undiscounted sum of line prices.
func (p *Patient) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		total = total.Add(decimal.NewFromInt(int64(l.Price)))
	}
	return total
}

// Discount is the amount subtracted for VIP patients, total × percent / 100.
func (p *Patient) Discount() decimal.Decimal {
	if p.Type != TypeVIP {
		return decimal.Zero
	}
	return p.Total().
		Mul(decimal.NewFromInt(int64(p.VIPDiscount))).
		Div(decimal.NewFromInt(100))
}

// AmountDue is the total after any VIP discount.
func (p *Patient) AmountDue() decimal.Decimal {
	return p.Total().Sub(p.Discount())
}

// Formatter renders documents under a clinic's display name.
type Formatter struct {
	ClinicName string
}

// NewFormatter creates a formatter. A blank clinic name falls back to the
// default display name.
func NewFormatter(clinicName string) *Formatter {
	if strings.TrimSpace(clinicName) == "" {
		clinicName = defaultClinicName
	}
	return &Formatter{ClinicName: clinicName}
}

// Bill renders the fixed-width bill document. The subtotal and discount
// lines appear only when the computed discount is positive.
func (f *Formatter) Bill(p *Patient) string {
	rule := strings.Repeat("=", width)
	sep := strings.Repeat("-", width)

	lines := []string{
		rule,
		center(f.ClinicName),
		rule,
		"Patient Name : " + p.Name,
		"Phone Number : " + p.Phone,
		"Patient Type : " + string(p.Type),
		"Date & Time  : " + p.GeneratedAt.Format(timeLayout),
		sep,
		fmt.Sprintf("%-*s%*s", nameCol, "Treatment", amountCol, "Cost (Rs.)"),
		sep,
	}

	for _, l := range p.Lines {
		lines = append(lines, fmt.Sprintf("%-*s%*d", nameCol, l.Name, amountCol, l.Price))
	}
	lines = append(lines, sep)

	if discount := p.Discount(); discount.IsPositive() {
		lines = append(lines,
			fmt.Sprintf("%-*s%*s", nameCol, "Subtotal", amountCol, p.Total().StringFixed(2)),
			fmt.Sprintf("%-*s%*s", nameCol,
				fmt.Sprintf("VIP Discount (%d%%)", p.VIPDiscount),
				amountCol, discount.Neg().StringFixed(2)),
		)
	}
	lines = append(lines,
		fmt.Sprintf("%-*s%*s", nameCol, "Total Bill", amountCol, p.AmountDue().StringFixed(2)),
		rule,
		center("Thank you for choosing our clinic!"),
		rule,
	)

	return strings.Join(lines, "\n")
}

// Prescription renders the fixed-width prescription document. An empty
// prescription falls back to the literal "No prescription provided." line.
func (f *Formatter) Prescription(p *Patient) string {
	rule := strings.Repeat("=", width)

	text := p.Prescription
	if text == "" {
		text = "No prescription provided."
	}

	lines := []string{
		rule,
		center("Prescription"),
		rule,
		"Patient Name : " + p.Name,
		"Phone Number : " + p.Phone,
		"Date & Time  : " + p.GeneratedAt.Format(timeLayout),
		strings.Repeat("-", width),
		text,
		rule,
	}

	return strings.Join(lines, "\n")
}

// Combined is the bill, a blank line, then the prescription. This is the
// unit handed to export, print, and the dated records area.
func (f *Formatter) Combined(p *Patient) string {
	return f.Bill(p) + "\n\n" + f.Prescription(p)
}

// center pads s to the full document width, extra space going to the right.
func center(s string) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
