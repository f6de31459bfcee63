package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvoker struct {
	calls int32
	err   error
}

func (c *countingInvoker) Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.err != nil {
		return nil, c.err
	}
	return &lambdasdk.InvokeOutput{StatusCode: 202}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFromAPIGatewayRequest(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "POST",
		Path:                  "/.netlify/functions/add-tribute",
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"from":"a"}`)),
		IsBase64Encoded:       true,
		QueryStringParameters: map[string]string{"page": "2"},
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}

	req, err := FromAPIGatewayRequest(event)
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, `{"from":"a"}`, string(req.Body))
	assert.Equal(t, "req-1", req.RequestID)
	assert.Equal(t, "2", req.Query("page"))
	assert.Equal(t, "", req.Query("pageSize"))
}

func TestFromAPIGatewayRequest_GeneratesRequestID(t *testing.T) {
	req, err := FromAPIGatewayRequest(events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	require.NoError(t, err)
	assert.NotEmpty(t, req.RequestID)

	var nilQuery Request
	assert.Equal(t, "", nilQuery.Query("page"))
}

func TestFromAPIGatewayRequest_BadBase64(t *testing.T) {
	_, err := FromAPIGatewayRequest(events.APIGatewayProxyRequest{Body: "%%%", IsBase64Encoded: true})
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	resp, err := JSON(201, map[string]string{"id": "1"})
	require.NoError(t, err)

	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.JSONEq(t, `{"id":"1"}`, string(resp.Body))
}

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		want        bool
		concurrency int
	}{
		{"warmup", `{"source":"warmup"}`, true, 0},
		{"warmup with concurrency", `{"source":"warmup","concurrency":3}`, true, 3},
		{"negative concurrency", `{"source":"warmup","concurrency":-2}`, true, 0},
		{"other source", `{"source":"aws.events"}`, false, 0},
		{"api gateway event", `{"httpMethod":"GET","path":"/"}`, false, 0},
		{"not json", `nope`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmup, ok := IsWarmupEvent(json.RawMessage(tt.payload))
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.concurrency, warmup.Concurrency)
			}
		})
	}
}

func TestWarmer_HandleWarmup(t *testing.T) {
	invoker := &countingInvoker{}
	warmer := NewWarmerWithInvoker("tributes-list", invoker, 0, quietLogger())

	resp := warmer.HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 3})

	assert.Equal(t, "warm", resp.Status)
	assert.Equal(t, 4, resp.InstancesWarmed)
	assert.Equal(t, int32(3), atomic.LoadInt32(&invoker.calls))
}

func TestWarmer_HandleWarmupInvokeFailure(t *testing.T) {
	invoker := &countingInvoker{err: errors.New("throttled")}
	warmer := NewWarmerWithInvoker("tributes-list", invoker, 0, quietLogger())

	resp := warmer.HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2})

	assert.Equal(t, 1, resp.InstancesWarmed)
}

func TestNewHandler(t *testing.T) {
	invoker := &countingInvoker{}
	warmer := NewWarmerWithInvoker("fn", invoker, 0, quietLogger())

	called := false
	h := NewHandler("test", func(ctx context.Context, req *Request) (*Response, error) {
		called = true
		return JSON(200, map[string]string{"method": req.Method})
	}, warmer, quietLogger())

	out, err := h(context.Background(), json.RawMessage(`{"source":"warmup"}`))
	require.NoError(t, err)
	assert.IsType(t, WarmupResponse{}, out)
	assert.False(t, called, "warmup must not reach the handler")

	out, err = h(context.Background(), json.RawMessage(`{"httpMethod":"GET","path":"/x"}`))
	require.NoError(t, err)
	resp, ok := out.(events.APIGatewayProxyResponse)
	require.True(t, ok)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"method":"GET"}`, resp.Body)
}

func TestNewHandler_HandlerError(t *testing.T) {
	h := NewHandler("test", func(ctx context.Context, req *Request) (*Response, error) {
		return nil, errors.New("boom")
	}, NewWarmerWithInvoker("fn", &countingInvoker{}, 0, quietLogger()), quietLogger())

	out, err := h(context.Background(), json.RawMessage(`{"httpMethod":"POST"}`))
	require.NoError(t, err)

	resp := out.(events.APIGatewayProxyResponse)
	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, internalErrorBody, resp.Body)
}
