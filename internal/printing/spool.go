// Package printing hands rendered documents to the system print
// command through short-lived spool files.
package printing

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adilwahab585-svg/Reimagine-clinic/pkg/logging"
)

const defaultCleanupDelay = 5 * time.Second

// Printer submits a spool file to an output device.
type Printer interface {
	Print(path string) error
}

// CommandPrinter shells out to a print command such as lp, passing the
// spool file path as the only argument.
type CommandPrinter struct {
	Command string
}

var _ Printer = (*CommandPrinter)(nil)

func (p *CommandPrinter) Print(path string) error {
	if err := exec.Command(p.Command, path).Run(); err != nil {
		return fmt.Errorf("printing: run %s: %w", p.Command, err)
	}
	return nil
}

// StubPrinter records submissions without touching any device. Used in
// tests and dry runs.
type StubPrinter struct {
	Paths []string
	Err   error
}

var _ Printer = (*StubPrinter)(nil)

func (p *StubPrinter) Print(path string) error {
	p.Paths = append(p.Paths, path)
	return p.Err
}

// Spool writes documents to temporary files, submits them to a Printer
// and removes them after a grace period. The cleanup timer is armed
// even when printing fails so spool files never accumulate.
type Spool struct {
	printer Printer
	delay   time.Duration
	dir     string
	logger  *logging.Logger
	wg      sync.WaitGroup
}

func NewSpool(printer Printer, delay time.Duration, logger *logging.Logger) *Spool {
	return NewSpoolWithDir(printer, delay, os.TempDir(), logger)
}

func NewSpoolWithDir(printer Printer, delay time.Duration, dir string, logger *logging.Logger) *Spool {
	if delay <= 0 {
		delay = defaultCleanupDelay
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Spool{printer: printer, delay: delay, dir: dir, logger: logger}
}

// Send spools text and submits it for printing.
func (s *Spool) Send(text string) error {
	jobID := uuid.New().String()
	path := filepath.Join(s.dir, fmt.Sprintf("clinic-print-%s.txt", jobID))

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("printing: write spool file: %w", err)
	}

	printErr := s.printer.Print(path)

	s.wg.Add(1)
	time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		if err := os.Remove(path); err != nil {
			s.logger.Debug("spool cleanup skipped", "job_id", jobID, "error", err)
			return
		}
		s.logger.Debug("spool file removed", "job_id", jobID)
	})

	if printErr != nil {
		s.logger.Error("print submission failed", "job_id", jobID, "error", printErr)
		return printErr
	}

	s.logger.Info("document sent to printer", "job_id", jobID, "path", path)
	return nil
}

// Drain blocks until every pending cleanup timer has fired. Callers
// that exit right after printing use it so spool files do not outlive
// the process.
func (s *Spool) Drain() {
	s.wg.Wait()
}
