package backend

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Query is a fully-formed request descriptor for one poll: the backend
// endpoint path and its accepted parameters. Each product maps to a distinct
// endpoint and a distinct parameter set.
type Query struct {
	Path   string
	Values url.Values
}

// BuildQuery maps a poll request onto its backend endpoint. It performs no
// I/O. An unrecognized product is a caller or configuration bug and fails
// with UnknownProductError before any request could be issued.
func BuildQuery(req domain.PollRequest) (Query, error) {
	var path string
	switch req.Product {
	case domain.ProductMETAR:
		path = "/api/leaderboard"
	case domain.ProductTAF:
		path = "/api/taf"
	case domain.ProductPIREP:
		path = "/api/pirep"
	default:
		return Query{}, &domain.UnknownProductError{Product: string(req.Product)}
	}

	if err := validate.Struct(req); err != nil {
		return Query{}, fmt.Errorf("invalid poll request: %w", err)
	}
	if req.Product == domain.ProductPIREP && req.Hours == 0 {
		return Query{}, fmt.Errorf("invalid poll request: hours is required for %s", domain.ProductPIREP)
	}

	v := url.Values{}
	v.Set("top", strconv.Itoa(req.Top))
	switch req.Product {
	case domain.ProductMETAR:
		v.Set("conus", strconv.FormatBool(req.Conus))
	case domain.ProductPIREP:
		v.Set("hours", strconv.Itoa(req.Hours))
	}

	return Query{Path: path, Values: v}, nil
}
