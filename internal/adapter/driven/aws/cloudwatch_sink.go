package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// PutLogEvents aceita no máximo 10.000 eventos por chamada.
const maxEventsPerBatch = 10000

type logsAPI interface {
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchSink recebe os eventos do pipeline e os envia ao CloudWatch Logs.
// Os eventos ficam em memória até Flush; os hooks nunca fazem chamadas de rede.
type CloudWatchSink struct {
	api    logsAPI
	group  string
	stream string
	now    func() time.Time

	mu     sync.Mutex
	events []cwTypes.InputLogEvent
}

// NewCloudWatchSink cria o sink para o log group informado, com um stream por execução.
func NewCloudWatchSink(api logsAPI, group string) *CloudWatchSink {
	host, _ := os.Hostname()
	if host == "" {
		host = "local"
	}
	return &CloudWatchSink{
		api:    api,
		group:  group,
		stream: fmt.Sprintf("demand-forecast/%s/%d", host, time.Now().UnixNano()),
		now:    time.Now,
	}
}

func (s *CloudWatchSink) Prepared(category string, rows, forecastRows int) {
	s.record("prepared",
		"msg", fmt.Sprintf("Chart prepared with %d total data points (%d forecast points)", rows, forecastRows),
		"category", categoryOrAll(category))
}

func (s *CloudWatchSink) ValidationFailed(category, reason string) {
	s.record("validation_failed", "category", categoryOrAll(category), "reason", reason)
}

func (s *CloudWatchSink) RenderFailed(renderer string, err error) {
	s.record("render_failed", "renderer", renderer, "error", fmt.Sprint(err))
}

func (s *CloudWatchSink) Degraded(renderer, category string) {
	s.record("degraded", "renderer", renderer, "category", categoryOrAll(category))
}

// Pending devolve quantos eventos aguardam envio.
func (s *CloudWatchSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Flush cria o stream (se necessário) e envia os eventos pendentes em lotes.
func (s *CloudWatchSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	events := s.events
	s.events = nil
	s.mu.Unlock()

	if len(events) == 0 {
		return nil
	}

	_, err := s.api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
	})
	var exists *cwTypes.ResourceAlreadyExistsException
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("create log stream %s: %w", s.stream, err)
	}

	// CloudWatch exige eventos em ordem cronológica dentro do lote
	sort.SliceStable(events, func(i, j int) bool {
		return aws.ToInt64(events[i].Timestamp) < aws.ToInt64(events[j].Timestamp)
	})

	for start := 0; start < len(events); start += maxEventsPerBatch {
		end := start + maxEventsPerBatch
		if end > len(events) {
			end = len(events)
		}
		_, err := s.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
			LogGroupName:  aws.String(s.group),
			LogStreamName: aws.String(s.stream),
			LogEvents:     events[start:end],
		})
		if err != nil {
			return fmt.Errorf("put log events: %w", err)
		}
	}
	return nil
}

// record formata o evento como "event key=value ..." e o guarda no buffer.
func (s *CloudWatchSink) record(event string, kv ...string) {
	var b strings.Builder
	b.WriteString(event)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %s=%q", kv[i], kv[i+1])
	}

	s.mu.Lock()
	s.events = append(s.events, cwTypes.InputLogEvent{
		Message:   aws.String(b.String()),
		Timestamp: aws.Int64(s.now().UnixMilli()),
	})
	s.mu.Unlock()
}

func categoryOrAll(category string) string {
	if category == "" {
		return "All"
	}
	return category
}
