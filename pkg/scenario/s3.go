package scenario

import (
	"context"
	stderrors "errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// S3API is the part of the S3 client S3Source uses.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3Source reads scenarios stored as objects under a key prefix. Objects in
// nested "directories" below the prefix are ignored.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a source over bucket/prefix.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// List returns the scenario names under the prefix, sorted.
func (s *S3Source) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var names []string
	seen := make(map[string]bool)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.New("E503").WithDetailf("list s3://%s/%s", s.bucket, s.prefix).Wrap(err)
		}
		for _, obj := range page.Contents {
			rel := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if strings.Contains(rel, "/") {
				continue
			}
			name, ok := trimExt(rel)
			if !ok || name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load fetches and parses the named scenario.
func (s *S3Source) Load(ctx context.Context, name string) (*Scenario, error) {
	if !validName(name) {
		return nil, errors.New("E504").WithDetailf("invalid name %q", name)
	}
	for _, ext := range extensions {
		key := path.Join(s.prefix, name+ext)
		data, err := s.get(ctx, key)
		if err != nil {
			var missing *types.NoSuchKey
			if stderrors.As(err, &missing) {
				continue
			}
			return nil, errors.New("E503").WithDetailf("s3://%s/%s", s.bucket, key).Wrap(err)
		}
		sc, err := Parse(data)
		if err != nil {
			return nil, loadError("s3://"+s.bucket+"/"+key, err)
		}
		if sc.Name == "" {
			sc.Name = name
		}
		return sc, nil
	}
	return nil, errors.New("E504").WithDetailf("%s in s3://%s/%s", name, s.bucket, s.prefix)
}

func (s *S3Source) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
