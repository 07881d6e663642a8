package concepts

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/axiome/firstprinciples/pkg/errors"
	"github.com/axiome/firstprinciples/pkg/observability"
)

// MaxMessageLength bounds incoming messages.
const MaxMessageLength = 500

// Service handles concept requests.
type Service struct {
	explainer Explainer
	logger    *log.Logger
	timeout   time.Duration
}

// NewService creates a Service. A nil explainer falls back to EchoExplainer;
// a zero timeout means the caller's context alone bounds the request.
func NewService(e Explainer, logger *log.Logger, timeout time.Duration) *Service {
	if e == nil {
		e = EchoExplainer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{explainer: e, logger: logger, timeout: timeout}
}

// Validate checks a request before it is handled.
func Validate(req Request) error {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return errors.New(errors.ErrCodeInvalidInput, "message cannot be empty")
	}
	if len(msg) > MaxMessageLength {
		return errors.New(errors.ErrCodeInvalidInput, "message too long (max %d characters)", MaxMessageLength)
	}
	return nil
}

// Handle validates req and asks the explainer. Invalid requests return an
// error; explainer failures are reported inside the Response so the editor
// can show them.
func (s *Service) Handle(ctx context.Context, req Request) (Response, error) {
	if err := Validate(req); err != nil {
		return Response{}, err
	}
	topic := strings.TrimSpace(req.Message)
	s.logger.Info("received concept message", "message", topic, "known", IsKnownTopic(topic))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	e, err := s.explainer.Explain(ctx, topic)
	elapsed := time.Since(start)
	observability.Pipeline().OnExplain(ctx, topic, s.explainer.Name(), elapsed, err)

	resp := Response{
		ReceivedMessage: req.Message,
		ProcessingTime:  elapsed.Round(time.Millisecond).String(),
	}
	if err != nil {
		s.logger.Error("explain failed", "message", topic, "explainer", s.explainer.Name(), "err", err)
		resp.Status = StatusError
		resp.Error = errors.UserMessage(err)
		return resp, nil
	}

	resp.Status = StatusSuccess
	resp.Response = "Message received and logged"
	if _, echo := s.explainer.(EchoExplainer); !echo {
		resp.Response = e.Explanation
		resp.Explanation = e
	}
	return resp, nil
}
