// Package httpx wires HTTP endpoints to the user and auth services and
// carries the cross-cutting middleware: access logging, rate limiting,
// bearer auth, and request metrics.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"github.com/jbj828/express-tdd/internal/i18n"
	authsvc "github.com/jbj828/express-tdd/internal/service/auth"
	usersvc "github.com/jbj828/express-tdd/internal/service/user"
)

// Message keys owned by the HTTP layer.
const (
	msgKeyUserCreated = "user_create_success"
	msgKeyAuthFailure = "auth_failure"
)

const (
	rateWindowDefault = time.Minute
	rateLimitRegister = 5
	rateLimitLogin    = 12

	healthCheckTimeout = 2 * time.Second
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	users    usersvc.Service
	auth     authsvc.Service
	locales  *i18n.Bundle
	limiter  RateLimiter
	dbHealth func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
	registrations      prometheus.Counter
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, userSvc usersvc.Service, authSvc authsvc.Service, locales *i18n.Bundle, limiter RateLimiter, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		users:    userSvc,
		auth:     authSvc,
		locales:  locales,
		limiter:  limiter,
		dbHealth: dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	registerUser := r.withRateLimit("register", rateLimitRegister, rateWindowDefault, rateLimitKeyIP, r.handleRegisterUser)
	listUsers := r.requireAuth(r.handleListUsers)
	r.mux.HandleFunc("/api/1.0/users", r.audit(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			registerUser(w, req)
		case http.MethodGet:
			listUsers(w, req)
		default:
			r.methodNotAllowed(w)
		}
	}))
	r.mux.HandleFunc("/api/1.0/auth", r.audit(r.withRateLimit("login", rateLimitLogin, rateWindowDefault, rateLimitKeyIP, r.handleLogin)))
	r.mux.HandleFunc("/healthz", r.audit(r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())
}

func (r *Router) handleRegisterUser(w http.ResponseWriter, req *http.Request) {
	tag := r.locales.Resolve(req.Header.Get("Accept-Language"))
	var payload usersvc.RegisterInput
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if _, err := r.users.Register(req.Context(), payload); err != nil {
		var verr *usersvc.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"validationErrors": r.localizeFields(tag, verr),
			})
			return
		}
		r.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "unexpected error")
		return
	}
	r.recordRegistration()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": r.locales.Message(tag, msgKeyUserCreated),
	})
}

func (r *Router) handleListUsers(w http.ResponseWriter, req *http.Request) {
	users, err := r.users.List(req.Context())
	if err != nil {
		r.logger.Error("user listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "unexpected error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	tag := r.locales.Resolve(req.Header.Get("Accept-Language"))
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, tokens, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message": r.locales.Message(tag, msgKeyAuthFailure),
			})
			return
		}
		r.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "unexpected error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"tokens": map[string]any{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    int(tokens.ExpiresIn.Seconds()),
		},
	})
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			r.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// localizeFields translates message keys into the resolved locale, keeping
// declared field order.
func (r *Router) localizeFields(tag language.Tag, verr *usersvc.ValidationError) orderedFields {
	out := make(orderedFields, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, fieldMessage{field: f.Field, message: r.locales.Message(tag, f.Key)})
	}
	return out
}

func (r *Router) audit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		actor := "anonymous"
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
			"request_id", requestID(req),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if info, ok := authInfoFromContext(ctx); ok {
			actor = "user"
			fields = append(fields, "user_id", info.UserID)
		}
		fields = append(fields, "actor", actor)
		r.recordRequestMetrics(req.Method, req.URL.Path, status, duration)

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestID returns the client-supplied request id or mints one.
func requestID(req *http.Request) string {
	if id := strings.TrimSpace(req.Header.Get("X-Request-ID")); id != "" {
		return id
	}
	return uuid.NewString()
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) applyRateHeaders(w http.ResponseWriter, limit int, decision rateDecision) {
	if limit <= 0 {
		return
	}
	remaining := limit - decision.count
	if remaining < 0 {
		remaining = 0
	}
	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !decision.windowEnd.IsZero() {
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.windowEnd.Unix(), 10))
	}
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
