package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang/glog"

	"github.com/xtding233/pricing-backend/internal/catalog"
)

const ErrorCodePrefix = "PRICING"

type ServiceErrorCode int

const (
	// NotFound occurs when a selection names a plan, model or option the catalog does not hold
	ErrorNotFound       ServiceErrorCode = 7
	ErrorNotFoundReason string           = "Reference not found in catalog"

	// MalformedRequest occurs when the request body cannot be read
	ErrorMalformedRequest       ServiceErrorCode = 17
	ErrorMalformedRequestReason string           = "Unable to read request body"

	// General occurs when an error fails to match any other error code
	ErrorGeneral       ServiceErrorCode = 9
	ErrorGeneralReason string           = "Unspecified error"
)

// ServiceError is the JSON body of every error response.
type ServiceError struct {
	Kind       string `json:"kind"`
	Code       string `json:"code"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail,omitempty"`
	RefKind    string `json:"ref_kind,omitempty"`
	RefKey     string `json:"ref_key,omitempty"`
	HttpStatus int    `json:"-"`
}

func newServiceError(code ServiceErrorCode, reason string, status int, detail string) *ServiceError {
	return &ServiceError{
		Kind:       "Error",
		Code:       fmt.Sprintf("%s-%d", ErrorCodePrefix, code),
		Reason:     reason,
		Detail:     detail,
		HttpStatus: status,
	}
}

// toServiceError maps engine errors onto API errors.
func toServiceError(err error) *ServiceError {
	if rnf, ok := catalog.AsReferenceNotFound(err); ok {
		se := newServiceError(ErrorNotFound, ErrorNotFoundReason, http.StatusNotFound, err.Error())
		se.RefKind = string(rnf.Kind)
		se.RefKey = rnf.Key
		return se
	}
	return newServiceError(ErrorGeneral, ErrorGeneralReason, http.StatusInternalServerError, err.Error())
}

func handleError(w http.ResponseWriter, r *http.Request, se *ServiceError) {
	if se.HttpStatus >= http.StatusInternalServerError {
		glog.Errorf("%s %s: %s", r.Method, r.URL.Path, se.Detail)
	} else {
		glog.V(2).Infof("%s %s: %s", r.Method, r.URL.Path, se.Detail)
	}
	writeJSON(w, se.HttpStatus, se)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("unable to send response: %v", err)
	}
}
