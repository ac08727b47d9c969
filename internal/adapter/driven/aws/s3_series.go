package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

// s3GetObjectAPI é o subconjunto do cliente S3 usado para ler as séries.
type s3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// loadS3Series baixa os dois objetos em paralelo. Cada objeto é um array JSON de DataPoint.
func loadS3Series(ctx context.Context, api s3GetObjectAPI, bucket, historicalKey, forecastKey string) (entity.Series, error) {
	var series entity.Series

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		points, err := getPoints(gctx, api, bucket, historicalKey)
		series.Historical = points
		return err
	})
	g.Go(func() error {
		points, err := getPoints(gctx, api, bucket, forecastKey)
		series.Forecast = points
		return err
	})

	if err := g.Wait(); err != nil {
		return entity.Series{}, err
	}
	return series, nil
}

func getPoints(ctx context.Context, api s3GetObjectAPI, bucket, key string) ([]entity.DataPoint, error) {
	out, err := api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	points, err := decodePoints(out.Body)
	if err != nil {
		return nil, fmt.Errorf("decode s3://%s/%s: %w", bucket, key, err)
	}
	return points, nil
}

func decodePoints(r io.Reader) ([]entity.DataPoint, error) {
	var points []entity.DataPoint
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []entity.DataPoint{}
	}
	return points, nil
}
