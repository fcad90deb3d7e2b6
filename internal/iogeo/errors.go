package iogeo

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
)

// RequestError is returned when a geo API call cannot be completed.
func RequestError(path string, err error) error {
	msg := `Geo API request <em>%s</em> failed

<em>How to fix:</em>
  1. Check network connectivity and <em>geodb.url</em>
  2. Check <em>geodb.api_key</em> or GNLOC_GEODB_API_KEY`

	return &gn.Error{
		Code: errcode.GeoRequestError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("geo api request %s: %w", path, err),
	}
}

// ResponseError is returned when the geo API answers with an error
// status or an unexpected body.
func ResponseError(path string, status int, err error) error {
	msg := "Geo API returned an unusable response for <em>%s</em> (status %d)"

	return &gn.Error{
		Code: errcode.GeoResponseError,
		Msg:  msg,
		Vars: []any{path, status},
		Err:  fmt.Errorf("geo api response %s, status %d: %w", path, status, err),
	}
}

// CacheError is returned when the response cache cannot be used.
func CacheError(path string, err error) error {
	msg := "Cannot use geo API response cache <em>%s</em>"

	return &gn.Error{
		Code: errcode.GeoCacheError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("geo response cache %s: %w", path, err),
	}
}
