package catalog

import (
	"fmt"
	"net/url"

	"coursehub/internal/domain/apperr"
)

var allowedVideoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"youtu.be":        true,
}

// ValidateVideoURL rejects lesson video links pointing anywhere but
// YouTube. Empty is fine: the field is optional.
func ValidateVideoURL(raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || !allowedVideoHosts[parsed.Host] {
		return fmt.Errorf("%w: only youtube.com links are allowed", apperr.ErrValidation)
	}
	return nil
}
