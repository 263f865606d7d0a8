package scenario

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"
)

const tinyScenario = "steps:\n  - tree: {tag: p, children: [{text: hi}]}\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "list.yaml"), listScenario)
	writeFile(t, filepath.Join(dir, "tiny.yml"), tinyScenario)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "steps: [\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a scenario")
	writeFile(t, filepath.Join(dir, "nested", "deep.yaml"), tinyScenario)

	src := NewDirSource(dir)
	ctx := context.Background()

	names, err := src.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]string{"broken", "list", "tiny"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	sc, err := src.Load(ctx, "list")
	if err != nil {
		t.Fatalf("Load(list): %v", err)
	}
	if sc.Name != "keyed-list" {
		t.Errorf("Load(list).Name = %q, want keyed-list", sc.Name)
	}

	sc, err = src.Load(ctx, "tiny")
	if err != nil {
		t.Fatalf("Load(tiny): %v", err)
	}
	if sc.Name != "tiny" {
		t.Errorf("unnamed scenario should take its file name, got %q", sc.Name)
	}

	_, err = src.Load(ctx, "broken")
	if !isCode(err, "E503") || !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("Load(broken) error = %v, want E503 naming the file", err)
	}

	for _, name := range []string{"missing", "../list", "nested/deep", ""} {
		if _, err := src.Load(ctx, name); !isCode(err, "E504") {
			t.Errorf("Load(%q) error = %v, want E504", name, err)
		}
	}
}

func TestDirSourceMissingDir(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "nope"))
	if _, err := src.List(context.Background()); !isCode(err, "E504") {
		t.Errorf("List() error = %v, want E504", err)
	}
}

// fakeS3 serves objects from memory, pageSize keys per listing page.
type fakeS3 struct {
	objects  map[string]string
	pageSize int
	pages    int
	getErr   error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.pages++
	prefix := aws.ToString(in.Prefix)
	after := aws.ToString(in.ContinuationToken)

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) && k > after {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if len(keys) > f.pageSize {
		keys = keys[:f.pageSize]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[len(keys)-1])
	}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{
		pageSize: 1,
		objects: map[string]string{
			"scenarios/list.yaml":        listScenario,
			"scenarios/tiny.yml":         tinyScenario,
			"scenarios/nested/deep.yaml": tinyScenario,
			"scenarios/README.md":        "# scenarios",
			"other/elsewhere.yaml":       tinyScenario,
		},
	}
	src := NewS3Source(client, "bucket", "scenarios")
	ctx := context.Background()

	names, err := src.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]string{"list", "tiny"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if client.pages < 2 {
		t.Errorf("List() read %d pages, want every page", client.pages)
	}

	sc, err := src.Load(ctx, "list")
	if err != nil {
		t.Fatalf("Load(list): %v", err)
	}
	if len(sc.Steps) != 3 {
		t.Errorf("Load(list) has %d steps, want 3", len(sc.Steps))
	}

	sc, err = src.Load(ctx, "tiny")
	if err != nil {
		t.Fatalf("Load(tiny): %v", err)
	}
	if sc.Name != "tiny" {
		t.Errorf("Load(tiny).Name = %q, want tiny", sc.Name)
	}

	for _, name := range []string{"elsewhere", "nested/deep", "missing"} {
		if _, err := src.Load(ctx, name); !isCode(err, "E504") {
			t.Errorf("Load(%q) error = %v, want E504", name, err)
		}
	}
}

func TestS3SourceGetError(t *testing.T) {
	denied := errors.New("access denied")
	src := NewS3Source(&fakeS3{pageSize: 10, getErr: denied}, "bucket", "")
	_, err := src.Load(context.Background(), "list")
	if !isCode(err, "E503") || !errors.Is(err, denied) {
		t.Errorf("Load() error = %v, want E503 wrapping %v", err, denied)
	}
}

func TestS3SourceParseError(t *testing.T) {
	client := &fakeS3{pageSize: 10, objects: map[string]string{"bad.yaml": "steps: []\n"}}
	src := NewS3Source(client, "bucket", "")
	_, err := src.Load(context.Background(), "bad")
	if !isCode(err, "E501") || !strings.Contains(err.Error(), "s3://bucket/bad.yaml") {
		t.Errorf("Load() error = %v, want E501 naming the object", err)
	}
}
