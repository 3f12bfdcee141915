// Package session drives a single patient visit from data entry
// through document generation, printing and export.
package session

import (
	"regexp"
	"strings"
	"time"

	"github.com/adilwahab585-svg/Reimagine-clinic/internal/billing"
	"github.com/adilwahab585-svg/Reimagine-clinic/pkg/logging"
)

// nowFunc returns the current time. Tests may swap it out.
var nowFunc = time.Now

// phonePattern accepts digits with the usual separators. Anything else
// needs an explicit override before documents are generated.
var phonePattern = regexp.MustCompile(`^[+\d][\d\s\-+()]{5,}$`)

// State tracks where a visit is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateGenerated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// PriceLookup resolves a treatment's catalog price.
type PriceLookup interface {
	Price(name string) (int, bool)
}

// RecordKeeper persists generated documents.
type RecordKeeper interface {
	SaveDaily(patientName, text string) (string, error)
	Export(text string) (string, error)
}

// DocumentPrinter submits a document for printing.
type DocumentPrinter interface {
	Send(text string) error
}

// Session accumulates visit details and renders them into a bill and
// prescription. Once generated, the snapshot stays printable until the
// next Reset even if the inputs are edited afterwards.
type Session struct {
	prices    PriceLookup
	formatter *billing.Formatter
	keeper    RecordKeeper
	printer   DocumentPrinter
	logger    *logging.Logger

	defaultDiscount int

	state             State
	name              string
	phone             string
	patientType       billing.PatientType
	discount          int
	allowUnusualPhone bool
	lines             []billing.Line
	prescription      string

	patient  *billing.Patient
	combined string
}

func New(prices PriceLookup, formatter *billing.Formatter, keeper RecordKeeper, printer DocumentPrinter, defaultDiscount int, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Session{
		prices:          prices,
		formatter:       formatter,
		keeper:          keeper,
		printer:         printer,
		defaultDiscount: defaultDiscount,
		logger:          logger,
	}
	s.Reset()
	return s
}

func (s *Session) State() State { return s.state }

// Patient returns the snapshot frozen by the last Generate, or nil.
func (s *Session) Patient() *billing.Patient { return s.patient }

// Document returns the combined bill and prescription from the last
// Generate, or the empty string.
func (s *Session) Document() string { return s.combined }

// Lines returns a copy of the currently selected treatments in
// selection order.
func (s *Session) Lines() []billing.Line {
	return append([]billing.Line(nil), s.lines...)
}

func (s *Session) markEditing() {
	s.state = StateEditing
}

// SetPatient records the patient's name and phone number.
func (s *Session) SetPatient(name, phone string) {
	s.name = strings.TrimSpace(name)
	s.phone = strings.TrimSpace(phone)
	s.markEditing()
}

func (s *Session) SetPatientType(t billing.PatientType) {
	s.patientType = t
	s.markEditing()
}

// SetVIPDiscount stores the discount percentage. The range is checked
// when documents are generated, not here.
func (s *Session) SetVIPDiscount(percent int) {
	s.discount = percent
	s.markEditing()
}

// AllowUnusualPhone lets a phone number that fails the format check
// through anyway.
func (s *Session) AllowUnusualPhone(allow bool) {
	s.allowUnusualPhone = allow
	s.markEditing()
}

func (s *Session) SetPrescription(text string) {
	s.prescription = strings.TrimSpace(text)
	s.markEditing()
}

// Select adds a treatment to the visit at its catalog price, or zero
// when the catalog does not know it. Selecting an already selected
// treatment is a no-op.
func (s *Session) Select(name string) {
	name = strings.TrimSpace(name)
	for _, line := range s.lines {
		if line.Name == name {
			return
		}
	}
	price, _ := s.prices.Price(name)
	s.lines = append(s.lines, billing.Line{Name: name, Price: price})
	s.markEditing()
}

// SetLinePrice overrides the price of a selected treatment for this
// visit only.
func (s *Session) SetLinePrice(name string, price int) error {
	for i := range s.lines {
		if s.lines[i].Name == name {
			s.lines[i].Price = price
			s.markEditing()
			return nil
		}
	}
	return ErrNotSelected
}

// Deselect removes a treatment from the visit if it is selected.
func (s *Session) Deselect(name string) {
	for i, line := range s.lines {
		if line.Name == name {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.markEditing()
			return
		}
	}
}

// Prune drops selected treatments that are no longer in the catalog,
// keeping the selection consistent after catalog removals.
func (s *Session) Prune() {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if _, ok := s.prices.Price(line.Name); ok {
			kept = append(kept, line)
		}
	}
	if len(kept) != len(s.lines) {
		s.lines = kept
		s.markEditing()
	}
}

// Generate validates the visit, freezes it into a patient snapshot and
// renders the combined documents. The rendered text is archived to the
// day's records folder; an archive failure is logged and does not fail
// the generation.
func (s *Session) Generate() (string, error) {
	if s.name == "" || s.phone == "" {
		return "", ErrMissingPatientInfo
	}
	if !phonePattern.MatchString(s.phone) && !s.allowUnusualPhone {
		return "", ErrUnusualPhone
	}
	if len(s.lines) == 0 {
		return "", ErrNoTreatments
	}
	discount := s.discount
	if s.patientType == billing.TypeVIP {
		if discount < 0 || discount > 100 {
			return "", ErrDiscountRange
		}
	} else {
		discount = 0
	}

	p := &billing.Patient{
		Name:         s.name,
		Phone:        s.phone,
		Type:         s.patientType,
		VIPDiscount:  discount,
		Lines:        append([]billing.Line(nil), s.lines...),
		Prescription: s.prescription,
		GeneratedAt:  nowFunc(),
	}
	s.patient = p
	s.combined = s.formatter.Combined(p)
	s.state = StateGenerated

	if path, err := s.keeper.SaveDaily(p.Name, s.combined); err != nil {
		s.logger.Warn("visit archive failed", "patient", p.Name, "error", err)
	} else {
		s.logger.Info("visit archived", "patient", p.Name, "path", path)
	}

	return s.combined, nil
}

// Print sends the last generated documents to the printer.
func (s *Session) Print() error {
	if s.patient == nil {
		return ErrNotGenerated
	}
	return s.printer.Send(s.combined)
}

// SaveToFile exports the last generated documents and returns the
// written path.
func (s *Session) SaveToFile() (string, error) {
	if s.patient == nil {
		return "", ErrNotGenerated
	}
	return s.keeper.Export(s.combined)
}

// Reset clears the visit back to a blank form with default settings.
func (s *Session) Reset() {
	s.state = StateIdle
	s.name = ""
	s.phone = ""
	s.patientType = billing.TypeNormal
	s.discount = s.defaultDiscount
	s.allowUnusualPhone = false
	s.lines = nil
	s.prescription = ""
	s.patient = nil
	s.combined = ""
}
