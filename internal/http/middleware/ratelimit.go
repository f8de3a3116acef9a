package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter holds the per-IP limiters and their whitelists
type RateLimiter struct {
	cfg               *config.RateLimitConfig
	logger            *zap.Logger
	ipLimiter         func(http.Handler) http.Handler
	submissionLimiter func(http.Handler) http.Handler
	whitelistIPs      map[string]bool
	whitelistPaths    map[string]bool
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool),
		whitelistPaths: make(map[string]bool),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, path := range cfg.WhitelistPaths {
		rl.whitelistPaths[path] = true
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerWindow,
		cfg.WindowDuration(),
		httprate.WithKeyFuncs(keyByClientIP),
		httprate.WithLimitHandler(rl.exceededHandler(cfg.WindowDuration(), "Too many requests from this IP, please try again later.")),
	)

	// Separate counter space so public submissions don't eat the general budget
	rl.submissionLimiter = httprate.Limit(
		cfg.SubmissionsPerWindow,
		cfg.SubmissionWindowDuration(),
		httprate.WithKeyFuncs(keyBySubmission),
		httprate.WithLimitHandler(rl.exceededHandler(cfg.SubmissionWindowDuration(), "Too many inquiries submitted. Please try again later.")),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_window", cfg.RequestsPerWindow),
		zap.Duration("window", cfg.WindowDuration()),
		zap.Int("submissions_per_window", cfg.SubmissionsPerWindow),
		zap.Duration("submission_window", cfg.SubmissionWindowDuration()),
	)

	return rl
}

// LimitByIP applies the general per-IP limit
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return rl.wrap(rl.ipLimiter, next)
}

// LimitSubmissions applies the stricter limit for public inquiry submissions
func (rl *RateLimiter) LimitSubmissions(next http.Handler) http.Handler {
	return rl.wrap(rl.submissionLimiter, next)
}

func (rl *RateLimiter) wrap(limiter func(http.Handler) http.Handler, next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := limiter(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isPathWhitelisted(r.URL.Path) || rl.whitelistIPs[ClientIP(r)] {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func keyByClientIP(r *http.Request) (string, error) {
	return "ip:" + ClientIP(r), nil
}

func keyBySubmission(r *http.Request) (string, error) {
	return "submit:" + ClientIP(r), nil
}

// ClientIP extracts the originating client address, honoring proxy headers
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isPathWhitelisted matches exact paths and "/prefix/*" entries
func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	if rl.whitelistPaths[path] {
		return true
	}
	for wp := range rl.whitelistPaths {
		if strings.HasSuffix(wp, "/*") && strings.HasPrefix(path, strings.TrimSuffix(wp, "/*")) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) exceededHandler(window time.Duration, detail string) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(w http.ResponseWriter, r *http.Request) {
		rl.logger.Warn("rate limit exceeded",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("client_ip", ClientIP(r)),
		)

		w.Header().Set("Content-Type", "application/problem+json")
		w.Header().Set("Retry-After", retryAfter)
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(domain.APIError{
			Type:   domain.ErrorTypeTooManyRequests,
			Title:  http.StatusText(http.StatusTooManyRequests),
			Status: http.StatusTooManyRequests,
			Detail: detail,
		})
	}
}
