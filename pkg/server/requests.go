package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
)

const maxBodyBytes = 1 << 16

var validate = validator.New()

// TopologyRequest selects a topology. Both fields are required; whether the
// values can be laid out is decided by fattree.Params.Validate.
type TopologyRequest struct {
	Depth *int `json:"depth" validate:"required"`
	Width *int `json:"width" validate:"required"`
}

// Params converts the request to layout parameters.
func (t TopologyRequest) Params() fattree.Params {
	return fattree.Params{Depth: *t.Depth, Width: *t.Width}
}

// SelectRequest selects a host by ordinal or by drawing coordinates.
type SelectRequest struct {
	Host *int     `json:"host" validate:"required_without_all=X Y,excluded_with=X Y"`
	X    *float64 `json:"x" validate:"required_without=Host,required_with=Y"`
	Y    *float64 `json:"y" validate:"required_without=Host,required_with=X"`
}

// decodeJSON decodes a size-limited request body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.New(errs.ErrCodeInvalidInput, "request body is empty")
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request")
	}
	e := verrs[0]
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return errs.New(errs.ErrCodeInvalidInput, "%s is required", field)
	case "required_without_all", "required_without", "required_with", "excluded_with":
		return errs.New(errs.ErrCodeInvalidInput, "give either host or both x and y")
	default:
		return errs.New(errs.ErrCodeInvalidInput, "%s: validation failed (%s)", field, e.Tag())
	}
}

// queryParams reads depth and width from the query string, falling back to
// the server defaults for missing values.
func (s *Server) queryParams(r *http.Request) (fattree.Params, error) {
	p := s.defaults
	q := r.URL.Query()
	for name, dst := range map[string]*int{"depth": &p.Depth, "width": &p.Width} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fattree.Params{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "%s must be an integer", name)
		}
		*dst = n
	}
	return p, nil
}

// queryHosts reads the from and to host ordinals from the query string.
func queryHosts(r *http.Request) []string {
	q := r.URL.Query()
	return []string{q.Get("from"), q.Get("to")}
}

func contentDisposition(name, ext string) string {
	return fmt.Sprintf("inline; filename=%q", name+ext)
}
