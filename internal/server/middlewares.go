package server

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
)

// newRequestID generates ULIDs so that request ids sort by arrival time.
func newRequestID() string {
	return ulid.Make().String()
}

func getRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func captureError(c echo.Context, err error) {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("requestID", getRequestID(c))
			hub.CaptureException(err)
		})
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogRequestID: true,
		LogRoutePath: true, // logs the handler path in the server that matched the request path
		LogMethod:    true,
		LogUserAgent: true,
		LogRemoteIP:  true,
		HandleError:  true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("requestID", v.RequestID),
					slog.String("method", v.Method),
					slog.String("handler", v.RoutePath),
					slog.String("remoteIP", v.RemoteIP),
					slog.String("userAgent", v.UserAgent),
				)
			} else {
				if v.Status >= 500 {
					captureError(c, v.Error)
				}
				logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("error", v.Error.Error()),
					slog.String("requestID", v.RequestID),
					slog.String("method", v.Method),
					slog.String("handler", v.RoutePath),
					slog.String("remoteIP", v.RemoteIP),
					slog.String("userAgent", v.UserAgent),
				)
			}
			return nil
		},
	})
}
