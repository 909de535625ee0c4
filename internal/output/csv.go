package output

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVWriter streams outcomes as CSV rows with the fixed report schema:
// domain, status, http_status, final_url, notes. Each row is flushed as
// it is written, so a terminated run still leaves a valid partial
// report.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header row and returns the writer.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write([]string{"domain", "status", "http_status", "final_url", "notes"}); err != nil {
		return nil, err
	}
	cw.w.Flush()
	return cw, cw.w.Error()
}

// Write appends one outcome row. Absent http_status and final_url
// become empty cells.
func (cw *CSVWriter) Write(o Outcome) error {
	httpStatus := ""
	if o.HTTPStatus != 0 {
		httpStatus = strconv.Itoa(o.HTTPStatus)
	}

	if err := cw.w.Write([]string{o.Domain, o.Status, httpStatus, o.FinalURL, o.Notes}); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}
