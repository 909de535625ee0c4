package output

import (
	"encoding/json"
	"io"
)

// JSONLWriter streams outcomes as JSON lines, including the enrichment
// fields the CSV schema leaves out.
type JSONLWriter struct {
	enc *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

func (jw *JSONLWriter) Write(o Outcome) error {
	return jw.enc.Encode(o)
}
