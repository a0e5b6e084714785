package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// ObjectPutter is the slice of the S3 API used for backups.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotSource produces the encoded document to back up.
type SnapshotSource interface {
	Snapshot() ([]byte, error)
	Backend() string
}

// NewSpacesClient builds an S3 client for DigitalOcean Spaces in region.
func NewSpacesClient(ctx context.Context, key, secret, region string) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// BackupService uploads document snapshots to a bucket. Each upload writes a
// timestamped object and overwrites latest.json.
type BackupService struct {
	client ObjectPutter
	bucket string
	prefix string
	source SnapshotSource
	now    func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewBackupService(client ObjectPutter, bucket, prefix string, source SnapshotSource) *BackupService {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = config.DefaultSpacesBackupPrefix
	}
	return &BackupService{
		client: client,
		bucket: bucket,
		prefix: prefix,
		source: source,
		now:    time.Now,
	}
}

// Upload stores one snapshot and returns the timestamped object key.
func (s *BackupService) Upload(ctx context.Context) (string, error) {
	body, err := s.source.Snapshot()
	if err != nil {
		metrics.RecordBackup(false)
		return "", fmt.Errorf("failed to snapshot document: %w", err)
	}

	stamped := path.Join(s.prefix, s.now().UTC().Format("20060102T150405Z")+".json")
	latest := path.Join(s.prefix, "latest.json")

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range []string{stamped, latest} {
		g.Go(func() error {
			_, err := s.client.PutObject(gctx, &s3.PutObjectInput{
				Bucket:      aws.String(s.bucket),
				Key:         aws.String(key),
				Body:        bytes.NewReader(body),
				ContentType: aws.String("application/json"),
			})
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordBackup(false)
		return "", err
	}

	metrics.RecordBackup(true)
	slog.Info("Backup uploaded",
		slog.String("type", "db"),
		slog.String("backend", s.source.Backend()),
		slog.String("bucket", s.bucket),
		slog.String("key", stamped),
		slog.Int("bytes", len(body)),
	)
	return stamped, nil
}

// Start schedules uploads using a cron spec such as "@every 6h".
func (s *BackupService) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("backup schedule already started")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.BackupUploadTimeout)
		defer cancel()
		if _, err := s.Upload(ctx); err != nil {
			slog.Error("Scheduled backup failed",
				slog.String("type", "db"),
				slog.Any("error", err),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the schedule and waits for a running upload to finish or ctx
// to expire.
func (s *BackupService) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}
