package lambda

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/sirupsen/logrus"
)

const (
	// WarmupSource identifies scheduled warmup events
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the self invocations
	// to land on other instances
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled event payload that keeps functions warm
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is returned for warmup events
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the part of the Lambda API client used for self invocation
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// Warmer answers warmup events and fans out asynchronous self invocations
type Warmer struct {
	functionName string
	delay        time.Duration
	logger       *logrus.Logger

	mu      sync.Mutex
	invoker Invoker
}

// NewWarmer creates a warmer for the current function. The Lambda API client
// is created on first use so cold starts that never see a warmup event do
// not pay for it.
func NewWarmer(logger *logrus.Logger) *Warmer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Warmer{
		functionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		delay:        WarmupDelay,
		logger:       logger,
	}
}

// NewWarmerWithInvoker creates a warmer with an explicit API client
func NewWarmerWithInvoker(functionName string, invoker Invoker, delay time.Duration, logger *logrus.Logger) *Warmer {
	w := NewWarmer(logger)
	w.functionName = functionName
	w.invoker = invoker
	w.delay = delay
	return w
}

// IsWarmupEvent checks if the payload is a warmup event
func IsWarmupEvent(payload json.RawMessage) (*WarmupEvent, bool) {
	var eventMap map[string]interface{}
	if err := json.Unmarshal(payload, &eventMap); err != nil {
		return nil, false
	}

	source, ok := eventMap["source"].(string)
	if !ok || source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: source}
	if concurrency, ok := eventMap["concurrency"].(float64); ok && concurrency > 0 {
		warmup.Concurrency = int(concurrency)
	}

	return warmup, true
}

// HandleWarmup processes a warmup event and optionally self-invokes to keep
// more instances warm. Failures are logged, never returned.
func (w *Warmer) HandleWarmup(ctx context.Context, warmup *WarmupEvent) WarmupResponse {
	instancesWarmed := 1

	if warmup.Concurrency > 0 {
		if err := w.selfInvoke(ctx, warmup.Concurrency); err != nil {
			w.logger.WithError(err).Warn("Warmup self invocation failed")
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	if w.delay > 0 {
		time.Sleep(w.delay)
	}

	return WarmupResponse{
		Status:          "warm",
		InstancesWarmed: instancesWarmed,
	}
}

func (w *Warmer) client(ctx context.Context) (Invoker, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.invoker != nil {
		return w.invoker, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	w.invoker = lambdasdk.NewFromConfig(cfg)
	return w.invoker, nil
}

// selfInvoke invokes this function count times asynchronously
func (w *Warmer) selfInvoke(ctx context.Context, count int) error {
	client, err := w.client(ctx)
	if err != nil {
		return err
	}

	// Child invocations carry zero concurrency so they do not fan out again
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	var invokeErr error
	var errMu sync.Mutex

	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			if err != nil {
				errMu.Lock()
				if invokeErr == nil {
					invokeErr = err
				}
				errMu.Unlock()
			}
		}()
	}

	wg.Wait()
	return invokeErr
}
