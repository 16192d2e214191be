package main

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// PresignOutcome tells a signed URL apart from the two ways signing can fail.
type PresignOutcome int

const (
	PresignSuccess PresignOutcome = iota
	PresignCredentialsError
	PresignOtherError
)

func (o PresignOutcome) String() string {
	switch o {
	case PresignSuccess:
		return "success"
	case PresignCredentialsError:
		return "credentials_error"
	default:
		return "other_error"
	}
}

// PresignResult carries the URL on success, or the cause on either error kind.
type PresignResult struct {
	Outcome PresignOutcome
	URL     string
	Err     error
}

// Ok reports whether URL holds a signed URL.
func (r PresignResult) Ok() bool {
	return r.Outcome == PresignSuccess
}

// Presigner issues pre-signed PUT URLs.
type Presigner interface {
	PresignPut(bucket, key, contentType string, expiry time.Duration) PresignResult
}

// S3Presigner signs URLs locally with the credentials of its S3 client.
type S3Presigner struct {
	Client s3iface.S3API
}

// NewS3Presigner builds an S3Presigner from the default credential chain.
func NewS3Presigner(region string) (*S3Presigner, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &S3Presigner{Client: s3.New(sess)}, nil
}

// PresignPut never returns the error directly; callers inspect the result.
func (p *S3Presigner) PresignPut(bucket, key, contentType string, expiry time.Duration) PresignResult {

	req, _ := p.Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "NoCredentialProviders" {
			return PresignResult{Outcome: PresignCredentialsError, Err: err}
		}
		return PresignResult{Outcome: PresignOtherError, Err: err}
	}

	return PresignResult{Outcome: PresignSuccess, URL: url}
}
