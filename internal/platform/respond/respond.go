package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/janisto/skinai/internal/platform/logging"
)

const (
	msgNotFound          = "resource not found"
	msgMethodNotAllowed  = "method not allowed"
	msgInternalServerErr = "internal server error"
)

var installOnce sync.Once

// ErrorBody is the single error shape of the API: {"error": "..."}.
// Details lists validation issues reported by the framework, if any.
type ErrorBody struct {
	Message string   `json:"error"             doc:"Human-readable error message"`
	Details []string `json:"details,omitempty" doc:"Individual validation issues"`
	status  int
}

func (e *ErrorBody) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.status)
}

// GetStatus implements huma.StatusError.
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// Install makes Huma render every error, including its own validation failures, as an ErrorBody.
// Huma reports request-shape failures as 422; the API reports them as 400.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return Error(context.Background(), requestStatus(status), msg, errs...)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return Error(ctx, requestStatus(status), msg, errs...)
		}
	})
}

func requestStatus(status int) int {
	if status == http.StatusUnprocessableEntity {
		return http.StatusBadRequest
	}
	return status
}

// Error builds an ErrorBody and logs it at a level matching status.
func Error(ctx context.Context, status int, msg string, errs ...error) huma.StatusError {
	msg = messageOrDefault(status, msg)
	details := detailsFromErrors(errs)

	// Huma calls NewError with status 0 to discover the error schema.
	if status > 0 {
		fields := []zap.Field{zap.Int("status", status)}
		if len(details) > 0 {
			fields = append(fields, zap.Strings("details", details))
		}
		logWithStatus(ctx, status, msg, joinErrors(errs), fields...)
	}
	return &ErrorBody{Message: msg, Details: details, status: status}
}

// WriteError renders an ErrorBody as JSON outside of Huma handlers.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, msg string, errs ...error) error {
	se := Error(ctx, status, msg, errs...)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(se.GetStatus())
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(se)
}

// NotFoundHandler emits a 404 in the shared error shape.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := WriteError(w, r.Context(), http.StatusNotFound, msgNotFound); err != nil {
			logging.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

// MethodNotAllowedHandler emits a 405 with an Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		if err := WriteError(w, r.Context(), http.StatusMethodNotAllowed, msgMethodNotAllowed); err != nil {
			logging.LogError(r.Context(), "failed to render method not allowed", err)
		}
	}
}

// Recoverer converts panics into 500 responses. http.ErrAbortHandler is re-raised.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel comparison as in net/http
					panic(rec)
				}
				var err error
				switch v := rec.(type) {
				case error:
					err = v
				default:
					err = fmt.Errorf("%v", v)
				}
				err = fmt.Errorf("%w\n%s", err, debug.Stack())
				if writeErr := WriteError(w, r.Context(), http.StatusInternalServerError, msgInternalServerErr, err); writeErr != nil {
					logging.LogError(r.Context(), "failed to render internal error", writeErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.Path
		if r.URL.RawPath != "" {
			routePath = r.URL.RawPath
		}
		if routePath == "" {
			routePath = "/"
		}
	}

	methods := []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowed := make([]string, 0, len(methods))
	for _, method := range methods {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func detailsFromErrors(errs []error) []string {
	var details []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			if d := detailer.ErrorDetail(); d != nil {
				if d.Location != "" {
					details = append(details, d.Location+": "+d.Message)
				} else {
					details = append(details, d.Message)
				}
				continue
			}
		}
		details = append(details, err.Error())
	}
	return details
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

func messageOrDefault(status int, msg string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func logWithStatus(ctx context.Context, status int, msg string, err error, fields ...zap.Field) {
	switch {
	case status >= 500:
		logging.LogError(ctx, msg, err, fields...)
	case status >= 400:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logging.LogWarn(ctx, msg, fields...)
	default:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logging.LogInfo(ctx, msg, fields...)
	}
}
