package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// idParam reads a UUID path parameter, writing 400 when it is malformed.
func idParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "Invalid "+name, map[string]string{name: "must be a valid UUID"})
		return "", false
	}
	return id.String(), true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Warn("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: "must be an integer"}}
	}
	return &v, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	d, ok := validator.IsValidDate(raw)
	if !ok {
		return nil, validator.ValidationErrors{{Field: key, Message: "must be a date in YYYY-MM-DD format"}}
	}
	return &d, nil
}

// queryStatus reads the status filter. "All" means no filter.
func queryStatus(r *http.Request) string {
	status := r.URL.Query().Get("status")
	if status == "All" {
		return ""
	}
	return status
}

func queryUUID(r *http.Request, key string) (*string, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: "must be a valid UUID"}}
	}
	s := id.String()
	return &s, nil
}
