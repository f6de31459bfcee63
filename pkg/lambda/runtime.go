package lambda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// internalErrorBody is returned when a handler fails without producing a response
const internalErrorBody = `{"error":"Internal server error"}`

// NewHandler wraps a HandlerFunc into an AWS Lambda entry point. Warmup
// events are answered before anything else; every other payload is treated
// as an API Gateway proxy event.
func NewHandler(name string, h HandlerFunc, warmer *Warmer, logger *logrus.Logger) func(context.Context, json.RawMessage) (interface{}, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if warmer == nil {
		warmer = NewWarmer(logger)
	}

	return func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		if warmup, ok := IsWarmupEvent(payload); ok {
			return warmer.HandleWarmup(ctx, warmup), nil
		}

		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			logger.WithError(err).WithField("handler", name).Error("Failed to decode event")
			return internalError(), nil
		}

		req, err := FromAPIGatewayRequest(event)
		if err != nil {
			logger.WithError(err).WithField("handler", name).Error("Failed to convert event")
			return internalError(), nil
		}

		start := time.Now()
		fields := logrus.Fields{
			"handler":    name,
			"request_id": req.RequestID,
			"method":     req.Method,
		}
		logger.WithFields(fields).Info("Function invoked")

		resp, err := h(ctx, req)
		fields["duration"] = time.Since(start)
		if err != nil || resp == nil {
			logger.WithFields(fields).WithError(err).Error("Handler failed")
			return internalError(), nil
		}

		fields["status_code"] = resp.StatusCode
		logger.WithFields(fields).Info("Function completed")

		return ToAPIGatewayResponse(resp), nil
	}
}

func internalError() events.APIGatewayProxyResponse {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range CORSHeaders {
		headers[k] = v
	}
	return events.APIGatewayProxyResponse{
		StatusCode: 500,
		Headers:    headers,
		Body:       internalErrorBody,
	}
}
