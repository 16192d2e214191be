package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

const (
	failedPresignPayload = "Failed to generate pre-signed URL."
	replyTopicSuffix     = "upload_url"
)

// Returned by Handle, without publishing, when the rule event lacks a field.
var (
	ErrMissingTopic = errors.New("event has no topic")
	ErrMissingFile  = errors.New("event has no message.file")
)

// UploadURLBroker answers a device's upload request with a pre-signed PUT URL
// published on the device's reply topic.
type UploadURLBroker struct {
	Bucket      string
	ContentType string
	Expiry      time.Duration
	Presigner   Presigner
	Publisher   Publisher
}

// DeviceIDFromTopic returns the last '/' separated segment of topic, or the
// whole topic when it has no '/'.
func DeviceIDFromTopic(topic string) string {
	return topic[strings.LastIndex(topic, "/")+1:]
}

// ReplyTopic is the topic a device listens on for its upload URL.
func ReplyTopic(deviceID string) string {
	return fmt.Sprintf("%s/%s", deviceID, replyTopicSuffix)
}

func (e IoTRuleEvent) extract() (file string, topic string, err error) {
	if e.Message == nil || !e.Message.HasFile {
		return "", "", ErrMissingFile
	}
	if e.Topic == nil {
		return "", "", ErrMissingTopic
	}
	return e.Message.File, *e.Topic, nil
}

// Handle is the Lambda entry point. A malformed event is returned as an error
// without publishing anything. After that, a signing failure or a failed URL
// publish both end in the fixed failure payload; only a failure to publish
// that payload reaches the platform.
func (b *UploadURLBroker) Handle(ctx context.Context, event IoTRuleEvent) error {

	invocation := invocationID(ctx)
	Debug.Printf("[%s] Got IoT event: %s", invocation, event)

	file, topic, err := event.extract()
	if err != nil {
		Error.Printf("[%s] Malformed IoT event: %v", invocation, err)
		return err
	}
	deviceID := DeviceIDFromTopic(topic)
	replyTopic := ReplyTopic(deviceID)

	Info.Printf("[%s] File for upload: %s, incoming topic: %s, device: %s", invocation, file, topic, deviceID)

	result := b.Presigner.PresignPut(b.Bucket, file, b.ContentType, b.Expiry)
	switch result.Outcome {
	case PresignSuccess:
		Info.Printf("[%s] Generated pre-signed URL for s3://%s/%s", invocation, b.Bucket, file)
		Debug.Printf("[%s] URL=%s", invocation, result.URL)

		err := b.Publisher.Publish(ctx, replyTopic, result.URL)
		if err == nil {
			return nil
		}
		Error.Printf("[%s] Publishing URL failed, sending failure message instead: %v", invocation, err)
	case PresignCredentialsError:
		Error.Printf("[%s] Credentials not available: %v", invocation, result.Err)
	default:
		Error.Printf("[%s] S3 Presign Error: s3://%s/%s (%v)", invocation, b.Bucket, file, result.Err)
	}

	if err := b.Publisher.Publish(ctx, replyTopic, failedPresignPayload); err != nil {
		Error.Printf("[%s] %v", invocation, err)
		return err
	}
	return nil
}

func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return "local-" + RandStringBytes(8)
}
