package entity

import "time"

// ConnectivityReport is the result of the AWS connectivity diagnostic.
type ConnectivityReport struct {
	Success             bool      `json:"success"`
	Message             string    `json:"message,omitempty"`
	AccountID           string    `json:"account_id,omitempty"`
	Arn                 string    `json:"arn,omitempty"`
	CredentialSource    string    `json:"credential_source,omitempty"`
	Buckets             []string  `json:"buckets,omitempty"`
	Region              string    `json:"region"`
	DataBucket          string    `json:"data_bucket,omitempty"`
	DataBucketReachable bool      `json:"data_bucket_reachable"`
	ServerTime          time.Time `json:"server_time"`

	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
