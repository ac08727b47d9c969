package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type s3DiagnosticAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// runConnectivity valida a identidade, lista os buckets e confere o bucket de dados.
func runConnectivity(ctx context.Context, stsClient stsAPI, s3Client s3DiagnosticAPI, report entity.ConnectivityReport) entity.ConnectivityReport {
	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return failReport(report, err)
	}
	report.AccountID = aws.ToString(identity.Account)
	report.Arn = aws.ToString(identity.Arn)

	buckets, err := s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return failReport(report, err)
	}
	report.Buckets = make([]string, 0, len(buckets.Buckets))
	for _, b := range buckets.Buckets {
		report.Buckets = append(report.Buckets, aws.ToString(b.Name))
	}

	if report.DataBucket != "" {
		if _, err := s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(report.DataBucket)}); err != nil {
			return failReport(report, fmt.Errorf("data bucket %s: %w", report.DataBucket, err))
		}
		report.DataBucketReachable = true
	}

	report.Success = true
	report.Message = "AWS connection successful"
	return report
}

func failReport(report entity.ConnectivityReport, err error) entity.ConnectivityReport {
	report.Success = false
	report.Error = err.Error()
	report.ErrorType, report.Code, report.RequestID = ClassifyError(err)
	return report
}

// ClassifyError extrai tipo, código e request id de um erro do SDK.
// Tipo é "<Service>.<Operation>" quando a operação é conhecida, senão o tipo Go do erro.
func ClassifyError(err error) (errType, code, requestID string) {
	if err == nil {
		return "", "", ""
	}

	errType = fmt.Sprintf("%T", err)

	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		errType = opErr.Service() + "." + opErr.Operation()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		requestID = respErr.ServiceRequestID()
	}
	return errType, code, requestID
}
