package contentpermissions

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-contentparts/pkg/content"
)

// ItemLoader resolves the content item addressed by a request. A nil item
// with a nil error lets the request through.
type ItemLoader func(r *http.Request) (*content.ContentItem, error)

// HTTPError lets loaders choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Guard returns middleware that checks the loaded item against the request
// principal. Denied requests are redirected to the type's RedirectURL when
// one is configured and answered with 403 otherwise.
func (s *Service) Guard(load ItemLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if load == nil {
				next.ServeHTTP(w, r)
				return
			}
			item, err := load(r)
			if err != nil {
				writeLoadError(w, err)
				return
			}
			if item == nil || s.CanAccessItem(r.Context(), item) {
				next.ServeHTTP(w, r)
				return
			}

			settings, err := s.GetSettings(r.Context(), item)
			if err != nil {
				s.logger.Warn().Err(err).Str("content_type", item.ContentType).Msg("content permissions settings unavailable")
			}
			if settings != nil && settings.RedirectURL != "" {
				http.Redirect(w, r, settings.RedirectURL, http.StatusFound)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func writeLoadError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
