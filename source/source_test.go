package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeFetcher struct {
	objects map[string]string
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	f.calls++
	v, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return []byte(v), nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		uri string
		loc Location
	}{
		{"-", Location{Scheme: "stdin"}},
		{"ref.txt", Location{Scheme: "file", Key: "ref.txt"}},
		{"s3://bucket/dir/ref.txt", Location{Scheme: "s3", Bucket: "bucket", Key: "dir/ref.txt"}},
		{"gs://b/o", Location{Scheme: "gs", Bucket: "b", Key: "o"}},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.uri)
		if err != nil {
			t.Fatalf("%v: %v", tt.uri, err)
		}
		if loc != tt.loc {
			t.Fatalf("Expected %+v. Received %+v", tt.loc, loc)
		}
	}
	for _, bad := range []string{"", "s3://bucket", "gs:///key", "s3://bucket/"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Expected error for %q", bad)
		}
	}
}

func TestReadPair(t *testing.T) {
	dir := t.TempDir()
	refFile := filepath.Join(dir, "ref.txt")
	if err := os.WriteFile(refFile, []byte("what is it\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s3 := &fakeFetcher{objects: map[string]string{"asr/hyp.txt": "what is"}}
	gcs := &fakeFetcher{objects: map[string]string{"asr/hyp.txt": "what was it"}}
	l := &Loader{Stdin: strings.NewReader("from stdin"), S3: s3, GCS: gcs}
	ctx := context.Background()

	ref, hyp, err := l.ReadPair(ctx, refFile, "s3://asr/hyp.txt")
	if err != nil {
		t.Fatal(err)
	}
	if ref != "what is it\n" || hyp != "what is" {
		t.Fatalf("Unexpected pair %q %q", ref, hyp)
	}
	_, hyp, err = l.ReadPair(ctx, refFile, "gs://asr/hyp.txt")
	if err != nil {
		t.Fatal(err)
	}
	if hyp != "what was it" {
		t.Fatalf("Unexpected hypothesis %q", hyp)
	}
	_, hyp, err = l.ReadPair(ctx, refFile, "-")
	if err != nil {
		t.Fatal(err)
	}
	if hyp != "from stdin" {
		t.Fatalf("Unexpected hypothesis %q", hyp)
	}
	if s3.calls != 1 || gcs.calls != 1 {
		t.Fatalf("Expected one call per backend. Received s3=%d gs=%d", s3.calls, gcs.calls)
	}

	if _, _, err := l.ReadPair(ctx, "-", "-"); err == nil {
		t.Fatalf("Expected error reading both from stdin")
	}
	if _, _, err := l.ReadPair(ctx, refFile, "s3://asr/missing.txt"); err == nil {
		t.Fatalf("Expected error for missing object")
	}
	if _, _, err := l.ReadPair(ctx, filepath.Join(dir, "missing.txt"), refFile); err == nil {
		t.Fatalf("Expected error for missing file")
	}
}
