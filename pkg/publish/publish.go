package publish

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/errors"
)

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client with static credentials. A configured
// endpoint switches to path-style addressing.
func NewS3Client(cfg config.PublishConfig) (*s3.Client, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("E403").
			WithDetail("No S3 credentials were provided.").
			WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}

	region := cfg.Region
	if region == "" {
		region = config.DefaultRegion
	}
	opts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
		opts.UsePathStyle = true
	}
	return s3.New(opts), nil
}

// Report summarises an upload.
type Report struct {
	// Files lists the uploaded object keys in upload order.
	Files []string

	// Bytes is the total size of the uploaded files.
	Bytes int64

	// URL is where the site root is served, if known.
	URL string
}

// Publisher uploads build directories to one bucket.
type Publisher struct {
	client    PutObjectAPI
	bucket    string
	prefix    string
	endpoint  string
	publicURL string
	logger    *slog.Logger
}

// New creates a publisher for the configured bucket.
func New(client PutObjectAPI, cfg config.PublishConfig) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("E403").
			WithDetail("publish.bucket is empty.").
			WithSuggestion("Set publish.bucket in a11ydocs.json or A11YDOCS_S3_BUCKET")
	}
	return &Publisher{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    slog.Default().With("component", "publish"),
	}, nil
}

// Key returns the object key for a file path relative to the build root.
func (p *Publisher) Key(rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

// URL returns the public URL of the site root. It is empty when neither a
// public URL nor an endpoint is configured.
func (p *Publisher) URL() string {
	base := p.publicURL
	if base == "" {
		if p.endpoint == "" {
			return ""
		}
		base = p.endpoint + "/" + p.bucket
	}
	if p.prefix != "" {
		base += "/" + p.prefix
	}
	return base + "/"
}

// Publish uploads every file under dir. Files are uploaded in lexical
// order; the first failure stops the upload.
func (p *Publisher) Publish(ctx context.Context, dir string) (*Report, error) {
	var files []string
	err := filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New("E401").Wrap(err).WithDetailf("Cannot read build output %s.", dir)
	}
	sort.Strings(files)

	report := &Report{URL: p.URL()}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return report, errors.New("E401").Wrap(err)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return report, errors.New("E401").Wrap(err).WithDetailf("Cannot read %s.", file)
		}

		key := p.Key(rel)
		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(ContentType(rel)),
			CacheControl:  aws.String(cacheControl(rel)),
		})
		if err != nil {
			return report, errors.New("E401").Wrap(err).WithDetailf("Uploading s3://%s/%s failed.", p.bucket, key)
		}

		p.logger.Debug("uploaded", "key", key, "bytes", len(data))
		report.Files = append(report.Files, key)
		report.Bytes += int64(len(data))
	}

	p.logger.Info("publish complete", "bucket", p.bucket, "files", len(report.Files), "bytes", report.Bytes)
	return report, nil
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".json": "application/json",
	".svg":  "image/svg+xml",
}

// ContentType returns the Content-Type for a file name.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// cacheControl lets browsers revalidate pages and cache assets briefly.
func cacheControl(name string) string {
	if strings.HasSuffix(name, ".html") {
		return "no-cache"
	}
	return "public, max-age=3600"
}
