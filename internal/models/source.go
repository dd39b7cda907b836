package models

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidSource is returned for URLs the pipeline cannot fetch.
var ErrInvalidSource = errors.New("url must be an absolute http or https URL")

// ValidateSource checks that raw is an absolute http(s) URL with a host.
func ValidateSource(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidSource
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidSource
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidSource
	}
	return nil
}
