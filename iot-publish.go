package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iotdataplane"
	"github.com/aws/aws-sdk-go/service/iotdataplane/iotdataplaneiface"
)

// Publisher delivers a payload to an IoT topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload string) error
}

// IoTPublisher publishes through the IoT Core data plane.
type IoTPublisher struct {
	Client iotdataplaneiface.IoTDataPlaneAPI
}

// NewIoTPublisher leaves endpoint resolution to the SDK when endpoint is empty.
func NewIoTPublisher(region string, endpoint string) (*IoTPublisher, error) {
	cfg := &aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("IoT Publish Session Error: %w", err)
	}
	return &IoTPublisher{Client: iotdataplane.New(sess)}, nil
}

// Publish sends payload as-is at QoS 0; there is no delivery acknowledgement.
func (p *IoTPublisher) Publish(ctx context.Context, topic string, payload string) error {

	resp, err := p.Client.PublishWithContext(ctx, &iotdataplane.PublishInput{
		Topic:   aws.String(topic),
		Qos:     aws.Int64(0),
		Payload: []byte(payload),
	})
	if err != nil {
		return fmt.Errorf("Unable to publish to %q: %w", topic, err)
	}

	Info.Printf("Published message to %s: %s", topic, payload)
	Debug.Printf("Publish Response=%v", resp)
	return nil
}
