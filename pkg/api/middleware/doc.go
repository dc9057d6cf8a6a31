// Package middleware provides the HTTP middleware of the resilience API
// server. Every middleware has the shape func(http.Handler) http.Handler and
// can be chained:
//
//	handler := middleware.PanicRecovery(logger)(mux)
//	handler = middleware.RequestID()(handler)
//	handler = middleware.Logging(logger, middleware.GetRequestID)(handler)
package middleware
