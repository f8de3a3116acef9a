package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. Production and the "json" format get
// the JSON encoder; anything else logs to a colored console. Unknown levels
// fall back to info.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// Request is one finished HTTP exchange as written to the access log
type Request struct {
	ID       string
	Method   string
	Path     string
	ClientIP string
	Status   int
	Size     int64
	Duration time.Duration
	AdminID  string
}

// LogRequest writes the access line for a request: error for 5xx, warn for
// 4xx, info otherwise.
func LogRequest(log *zap.Logger, req Request) {
	msg := fmt.Sprintf("%s %-30s -> %3d (%s)", req.Method, req.Path, req.Status, req.Duration.Truncate(time.Microsecond))
	ce := log.Check(levelForStatus(req.Status), msg)
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("request_id", req.ID),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("client_ip", req.ClientIP),
		zap.Int("status_code", req.Status),
		zap.Int64("response_size", req.Size),
		zap.Duration("duration", req.Duration),
	}
	if req.AdminID != "" {
		fields = append(fields, zap.String("admin_id", req.AdminID))
	}
	ce.Write(fields...)
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithRequest adds request context to logger
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithInquiry scopes a logger to a single inquiry
func WithInquiry(log *zap.Logger, inquiryID uuid.UUID) *zap.Logger {
	return log.With(zap.String("inquiry_id", inquiryID.String()))
}

// WithDispatch scopes a logger to one notification email for an inquiry
func WithDispatch(log *zap.Logger, inquiryID uuid.UUID, kind string) *zap.Logger {
	return WithInquiry(log, inquiryID).With(zap.String("dispatch", kind))
}

// Recipient logs an email address with the local part masked.
// Submitter addresses are personal data and stay out of log storage.
func Recipient(address string) zap.Field {
	return zap.String("recipient", MaskEmail(address))
}

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "j***@acme.example".
func MaskEmail(address string) string {
	at := strings.LastIndex(address, "@")
	if at <= 0 {
		return "***"
	}
	return address[:1] + "***" + address[at:]
}
