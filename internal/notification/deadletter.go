package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeadLetter records a delivery that was given up on.
type DeadLetter struct {
	Channel  string    `json:"channel"`
	Message  Message   `json:"message"`
	Attempts int       `json:"attempts"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failedAt"`
}

func newDeadLetter(channel string, m Message, attempts int, err error) DeadLetter {
	dl := DeadLetter{
		Channel:  channel,
		Message:  m,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	if err != nil {
		dl.Error = err.Error()
	}
	return dl
}

type Sink interface {
	Put(ctx context.Context, dl DeadLetter) error
}

// sinkTimeout bounds a single Put, including the S3 round trip.
const sinkTimeout = 10 * time.Second

func putDeadLetter(sink Sink, dl DeadLetter, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := sink.Put(ctx, dl); err != nil {
		logger.Error("dead-letter sink failed",
			zap.String("channel", dl.Channel),
			zap.Uint("booking_id", dl.Message.BookingID),
			zap.Error(err),
		)
	}
}

// --------------------------------------------------
// Log
// --------------------------------------------------

type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Put(_ context.Context, dl DeadLetter) error {
	s.logger.Error("notification dead-lettered",
		zap.String("channel", dl.Channel),
		zap.Uint("booking_id", dl.Message.BookingID),
		zap.String("confirmation", dl.Message.Confirmation),
		zap.Int("attempts", dl.Attempts),
		zap.String("error", dl.Error),
	)
	return nil
}

// --------------------------------------------------
// S3
// --------------------------------------------------

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink archives each dead letter as a JSON object under
// <prefix>/YYYY/MM/DD/<uuid>.json.
type S3Sink struct {
	client objectPutter
	bucket string
	prefix string
}

func NewS3Client(region, accessKeyID, secretAccessKey string) *s3.Client {
	opts := s3.Options{Region: region}
	if accessKeyID != "" && secretAccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		)
	}
	return s3.New(opts)
}

func NewS3Sink(client objectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) key(dl DeadLetter) string {
	return path.Join(
		s.prefix,
		dl.FailedAt.Format("2006/01/02"),
		uuid.NewString()+".json",
	)
}

func (s *S3Sink) Put(ctx context.Context, dl DeadLetter) error {
	body, err := json.Marshal(dl)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(dl)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive dead letter: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Fan-out
// --------------------------------------------------

// MultiSink writes to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Put(ctx context.Context, dl DeadLetter) error {
	var errs []error
	for _, s := range m {
		if err := s.Put(ctx, dl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
