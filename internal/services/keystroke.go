package services

import (
	"context"

	"github.com/keyprint/authserver/internal/keystroke"
	"github.com/keyprint/authserver/types"
	"go.uber.org/zap"
)

const statusOK = "ok"

// KeystrokeService acknowledges typing samples. Nothing is persisted and no
// sample is compared against a profile yet.
type KeystrokeService struct {
	logger *zap.Logger
}

func NewKeystrokeService(logger *zap.Logger) *KeystrokeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeystrokeService{logger: logger}
}

// Enroll accepts an enrollment sample and reports how many events arrived.
func (s *KeystrokeService) Enroll(ctx context.Context, req types.EnrollRequest) types.EnrollResponse {
	var username string
	if req.Username != nil {
		username = *req.Username
	}
	timings := keystroke.ExtractTimings(keystroke.DecodeEvents(req.Events))

	s.logger.Info("keystroke enrollment received",
		zap.String("username", username),
		zap.Int("event_count", len(req.Events)),
		zap.Int("dwell_keys", len(timings.Dwell)),
		zap.Int("flight_samples", len(timings.Flight)),
	)

	return types.EnrollResponse{
		Status:     statusOK,
		Received:   true,
		EventCount: len(req.Events),
	}
}

// LoginTry accepts a keystroke login sample.
// TODO: compare against the enrolled profile once timings are extracted.
func (s *KeystrokeService) LoginTry(ctx context.Context, payload any) types.LoginTryResponse {
	s.logger.Info("keystroke login attempt received", zap.String("payload_type", payloadKind(payload)))
	return types.LoginTryResponse{Status: statusOK, Received: true}
}

func payloadKind(payload any) string {
	switch payload.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return "null"
	}
}
