package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReportNotFound         = errors.New("report not found")
	ErrReportAlreadyFinalized = errors.New("report already finalized")
	ErrUnknownReportKind      = errors.New("unknown report kind")
)

// MissingParameterError is returned before any data is fetched when a report
// is requested without one of the parameters its kind requires.
type MissingParameterError struct {
	Kind   Kind
	Params []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s report requires %s", e.Kind, strings.Join(e.Params, ", "))
}

// InvalidRecordError names a payslip that cannot be aggregated.
type InvalidRecordError struct {
	RecordID string
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid payslip %s: %s", e.RecordID, e.Reason)
}
