package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fieldMessage is one localized validation failure.
type fieldMessage struct {
	field   string
	message string
}

// orderedFields marshals as a JSON object whose keys keep declared field
// order. encoding/json sorts map keys, which would scramble the
// username/email/password ordering clients rely on.
type orderedFields []fieldMessage

func (o orderedFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.field)
		if err != nil {
			return nil, err
		}
		msg, err := json.Marshal(f.message)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(msg)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
