package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jamiealquiza/envy"
)

const maxPresignExpiry = 7 * 24 * 60 * 60

type config struct {
	s3Name      *string
	s3Region    *string
	iotRegion   *string
	iotEndpoint *string
	expiry      *int64
	contentType *string
	logVerbose  *bool
	eventFile   *string
}

func init() {
	rand.Seed(time.Now().UnixNano())
}

func (conf config) validate() error {
	if *conf.s3Name == "" {
		return fmt.Errorf("bucket is mandatory")
	}
	if *conf.s3Region == "" || *conf.iotRegion == "" {
		return fmt.Errorf("bucketregion and iotregion must not be empty")
	}
	if *conf.expiry < 1 || *conf.expiry > maxPresignExpiry {
		return fmt.Errorf("expiry must be between 1 and %d seconds, got %d", maxPresignExpiry, *conf.expiry)
	}
	if *conf.contentType == "" {
		return fmt.Errorf("contenttype must not be empty")
	}
	return nil
}

func main() {

	conf := config{
		flag.String("bucket", "", "Name of the S3 bucket devices upload into [MANDATORY]"),
		flag.String("bucketregion", "us-east-1", "AWS region of S3 bucket"),
		flag.String("iotregion", "us-east-1", "AWS region of the IoT Core data endpoint"),
		flag.String("iotendpoint", "", "Custom IoT data endpoint, e.g. https://xxxx-ats.iot.us-east-1.amazonaws.com"),
		flag.Int64("expiry", 3600, "Lifetime of the pre-signed URL in seconds"),
		flag.String("contenttype", "image/jpeg", "Content-Type the upload must be made with"),
		flag.Bool("verbose", false, "Show detailed information during run"),
		flag.String("event", "", "Handle a single IoT event read from this JSON file ('-' for stdin) instead of running as a Lambda"),
	}
	envy.Parse("UPLOADURL")
	flag.Parse()

	if err := conf.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logInit(conf)

	broker, err := newBroker(conf)
	if err != nil {
		Error.Printf("Failed to initialise: %v", err)
		os.Exit(1)
	}

	gracefulStop(func(sig os.Signal) {
		Info.Printf("Shutting down on %v", sig)
	})

	if *conf.eventFile != "" {
		if err := invokeLocal(broker, *conf.eventFile); err != nil {
			Error.Printf("Local invocation failed: %v", err)
			os.Exit(1)
		}
		return
	}

	lambda.Start(broker.Handle)
}

func newBroker(conf config) (*UploadURLBroker, error) {

	presigner, err := NewS3Presigner(*conf.s3Region)
	if err != nil {
		return nil, fmt.Errorf("S3 Presign Session Error: %w", err)
	}

	publisher, err := NewIoTPublisher(*conf.iotRegion, *conf.iotEndpoint)
	if err != nil {
		return nil, err
	}

	return &UploadURLBroker{
		Bucket:      *conf.s3Name,
		ContentType: *conf.contentType,
		Expiry:      time.Duration(*conf.expiry) * time.Second,
		Presigner:   presigner,
		Publisher:   publisher,
	}, nil
}

func readEvent(r io.Reader) (IoTRuleEvent, error) {
	var event IoTRuleEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return event, fmt.Errorf("IoT event JSON Error: %w", err)
	}
	return event, nil
}

func invokeLocal(broker *UploadURLBroker, path string) error {

	var in io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	event, err := readEvent(in)
	if err != nil {
		return err
	}
	return broker.Handle(context.Background(), event)
}
