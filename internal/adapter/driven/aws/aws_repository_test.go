package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

type fakeS3 struct {
	objects map[string]string
	buckets []string
	headErr error
	listErr error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) ListBuckets(ctx context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListBucketsOutput{}
	for _, b := range f.buckets {
		out.Buckets = append(out.Buckets, s3Types.Bucket{Name: aws.String(b)})
	}
	return out, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

type fakeSTS struct{}

func (fakeSTS) GetCallerIdentity(ctx context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/forecast"),
	}, nil
}

func TestLoadS3Series(t *testing.T) {
	api := &fakeS3{objects: map[string]string{
		"historical.json": `[{"date":"2024-01-01","actual":100,"forecast":null,"category":"Electronics"}]`,
		"forecast.json":   `[{"date":"2024-02-01","actual":null,"forecast":120,"category":"Electronics"}]`,
	}}

	series, err := loadS3Series(context.Background(), api, "data", "historical.json", "forecast.json")
	if err != nil {
		t.Fatalf("loadS3Series: %v", err)
	}
	if len(series.Historical) != 1 || *series.Historical[0].Actual != 100 {
		t.Errorf("historical = %+v", series.Historical)
	}
	if len(series.Forecast) != 1 || *series.Forecast[0].Forecast != 120 {
		t.Errorf("forecast = %+v", series.Forecast)
	}

	_, err = loadS3Series(context.Background(), api, "data", "historical.json", "missing.json")
	if err == nil || !strings.Contains(err.Error(), "s3://data/missing.json") {
		t.Fatalf("expected error naming the missing object, got %v", err)
	}
}

type fakeCE struct {
	pages     []*costexplorer.GetCostAndUsageOutput
	calls     int
	forecasts map[string]string
}

func (f *fakeCE) GetCostAndUsage(ctx context.Context, in *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func (f *fakeCE) GetCostForecast(ctx context.Context, in *costexplorer.GetCostForecastInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
	svc := in.Filter.Dimensions.Values[0]
	mean, ok := f.forecasts[svc]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "DataUnavailableException", Message: "not enough data"}
	}
	return &costexplorer.GetCostForecastOutput{
		ForecastResultsByTime: []ceTypes.ForecastResult{{
			TimePeriod: &ceTypes.DateInterval{Start: aws.String("2024-03-15"), End: aws.String("2024-04-01")},
			MeanValue:  aws.String(mean),
		}},
	}, nil
}

func group(service, amount string) ceTypes.Group {
	return ceTypes.Group{
		Keys:    []string{service},
		Metrics: map[string]ceTypes.MetricValue{costMetric: {Amount: aws.String(amount)}},
	}
}

func TestLoadCostSeries(t *testing.T) {
	api := &fakeCE{
		pages: []*costexplorer.GetCostAndUsageOutput{
			{
				ResultsByTime: []ceTypes.ResultByTime{{
					TimePeriod: &ceTypes.DateInterval{Start: aws.String("2024-01-01")},
					Groups:     []ceTypes.Group{group("Amazon S3", "10"), group("AWS Lambda", "1")},
				}},
				NextPageToken: aws.String("next"),
			},
			{
				ResultsByTime: []ceTypes.ResultByTime{{
					TimePeriod: &ceTypes.DateInterval{Start: aws.String("2024-02-01")},
					Groups:     []ceTypes.Group{group("Amazon EC2", "50"), group("Amazon S3", "12")},
				}},
			},
		},
		forecasts: map[string]string{"Amazon EC2": "55.5"},
	}

	w := costWindow(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 2, 1)
	series, err := loadCostSeries(context.Background(), api, w, 2)
	if err != nil {
		t.Fatalf("loadCostSeries: %v", err)
	}

	if api.calls != 2 {
		t.Errorf("expected 2 paginated calls, got %d", api.calls)
	}
	for _, p := range series.Historical {
		if p.Category == "AWS Lambda" {
			t.Errorf("service outside the top 2 kept: %+v", p)
		}
	}
	if len(series.Historical) != 3 {
		t.Errorf("historical points = %d, want 3", len(series.Historical))
	}
	if len(series.Forecast) != 1 {
		t.Fatalf("forecast points = %+v", series.Forecast)
	}
	f := series.Forecast[0]
	if f.Category != "Amazon EC2" || f.Date != "2024-03-01" || *f.Forecast != 55.5 {
		t.Errorf("forecast point = %+v", f)
	}
}

func TestCostWindow(t *testing.T) {
	w := costWindow(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 6, 3)
	want := map[string][2]time.Time{
		"history":  {time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		"forecast": {time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	if !w.HistoryStart.Equal(want["history"][0]) || !w.HistoryEnd.Equal(want["history"][1]) {
		t.Errorf("history window = %v..%v", w.HistoryStart, w.HistoryEnd)
	}
	if !w.ForecastStart.Equal(want["forecast"][0]) || !w.ForecastEnd.Equal(want["forecast"][1]) {
		t.Errorf("forecast window = %v..%v", w.ForecastStart, w.ForecastEnd)
	}
}

func TestRunConnectivity(t *testing.T) {
	report := runConnectivity(context.Background(), fakeSTS{}, &fakeS3{buckets: []string{"a", "data"}},
		entity.ConnectivityReport{Region: "us-east-1", DataBucket: "data"})

	if !report.Success || report.Message != "AWS connection successful" {
		t.Fatalf("expected success, got %+v", report)
	}
	if report.AccountID != "123456789012" || len(report.Buckets) != 2 || !report.DataBucketReachable {
		t.Errorf("report = %+v", report)
	}

	failed := runConnectivity(context.Background(), fakeSTS{},
		&fakeS3{listErr: &smithy.OperationError{
			ServiceID:     "S3",
			OperationName: "ListBuckets",
			Err:           &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"},
		}},
		entity.ConnectivityReport{Region: "us-east-1"})

	if failed.Success {
		t.Fatal("expected failure")
	}
	if failed.ErrorType != "S3.ListBuckets" || failed.Code != "AccessDenied" {
		t.Errorf("error classification = %q / %q", failed.ErrorType, failed.Code)
	}
	if failed.AccountID == "" {
		t.Errorf("identity gathered before the failure should be kept")
	}
}

func TestClassifyErrorPlain(t *testing.T) {
	errType, code, requestID := ClassifyError(errors.New("boom"))
	if errType != "*errors.errorString" || code != "" || requestID != "" {
		t.Errorf("got %q %q %q", errType, code, requestID)
	}
}

type fakeLogs struct {
	streams int
	batches [][]cwTypes.InputLogEvent
}

func (f *fakeLogs) CreateLogStream(ctx context.Context, _ *cloudwatchlogs.CreateLogStreamInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	f.streams++
	if f.streams > 1 {
		return nil, &cwTypes.ResourceAlreadyExistsException{Message: aws.String("exists")}
	}
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (f *fakeLogs) PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	f.batches = append(f.batches, in.LogEvents)
	return &cloudwatchlogs.PutLogEventsOutput{}, nil
}

func TestCloudWatchSink(t *testing.T) {
	api := &fakeLogs{}
	sink := NewCloudWatchSink(api, "/demand-forecast")
	sink.now = func() time.Time { return time.UnixMilli(1700000000000) }

	sink.Prepared("Electronics", 2, 1)
	sink.RenderFailed("canvas", errors.New("context lost"))
	sink.Degraded("canvas", "")
	if sink.Pending() != 3 {
		t.Fatalf("pending = %d", sink.Pending())
	}

	if err := sink.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if sink.Pending() != 0 || len(api.batches) != 1 || len(api.batches[0]) != 3 {
		t.Fatalf("unexpected batches %+v", api.batches)
	}
	first := aws.ToString(api.batches[0][0].Message)
	if !strings.Contains(first, "Chart prepared with 2 total data points (1 forecast points)") {
		t.Errorf("prepared message = %q", first)
	}
	if !strings.Contains(aws.ToString(api.batches[0][2].Message), `category="All"`) {
		t.Errorf("degraded message = %q", aws.ToString(api.batches[0][2].Message))
	}

	// a second flush reuses the existing stream
	sink.ValidationFailed("Clothing", "No historical data available for category: Clothing")
	if err := sink.Flush(context.Background()); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(api.batches) != 2 {
		t.Errorf("expected a second batch")
	}

	if err := sink.Flush(context.Background()); err != nil || len(api.batches) != 2 {
		t.Errorf("empty flush should be a no-op")
	}
}

func TestProfilesFrom(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials")
	cfg := filepath.Join(dir, "config")
	_ = os.WriteFile(creds, []byte("[default]\nkey=1\n[prod]\n"), 0600)
	_ = os.WriteFile(cfg, []byte("[profile staging]\nregion=us-east-1\n"), 0600)

	got := strings.Join(profilesFrom(creds, cfg), ",")
	if got != "default,prod,staging" {
		t.Errorf("profiles = %s", got)
	}

	if got := profilesFrom(filepath.Join(dir, "x"), filepath.Join(dir, "y")); len(got) != 1 || got[0] != "default" {
		t.Errorf("fallback profiles = %v", got)
	}
}

func TestSetRegionResetsCaches(t *testing.T) {
	repo := NewAWSRepository("us-east-1")
	repo.clientCache["-s3"] = struct{}{}

	repo.SetRegion("us-east-1")
	if len(repo.clientCache) != 1 {
		t.Fatalf("same region must keep the cache")
	}

	repo.SetRegion("eu-west-1")
	if repo.region != "eu-west-1" || len(repo.clientCache) != 0 {
		t.Errorf("region = %s, cached clients = %d", repo.region, len(repo.clientCache))
	}
}
