package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies: a maximal source plus envelope.
const maxBodyBytes = 1<<20 + 64<<10

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err's code to an HTTP status. Errors without a code are
// reported as internal without leaking their text.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	if !code.ClientFault() {
		h.Logger.Error("request failed", "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: string(code), Message: msg})
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.New(errors.ErrCodeSourceTooLarge, "request body too large (max %d bytes)", tooLarge.Limit)
		case stderrors.Is(err, io.EOF):
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		default:
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
		}
	}
	return nil
}
