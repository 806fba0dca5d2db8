package report

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// WriteResponse writes the response in the appropriate format based on the
// query parameter. JSON is the default; MessagePack is used when
// format=msgpack is specified.
func (f Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, data any) error {
	if req.URL.Query().Get("format") == "msgpack" {
		w.Header().Set("Content-Type", "application/msgpack")
		encoded, err := msgpack.Marshal(data)
		if err != nil {
			http.Error(w, "encoding error", http.StatusInternalServerError)
			return err
		}
		_, err = w.Write(encoded)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error payload in the requested format with the given
// status code.
func (f Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	w.WriteHeader(status)
	_ = f.WriteResponse(w, req, map[string]string{"error": msg})
}
