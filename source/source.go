// Package source reads the reference and hypothesis texts from local files,
// stdin, S3 or Google Cloud Storage.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
)

// Fetcher downloads one object from a bucket
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

type Loader struct {
	// Directory holding the aws "credentials"/"config" files and gcp.json
	CredentialsPath string
	Stdin           io.Reader

	// Overrides for the cloud backends; built from CredentialsPath when nil
	S3  Fetcher
	GCS Fetcher
}

// Location is a parsed source argument
type Location struct {
	Scheme string // "file", "stdin", "s3" or "gs"
	Bucket string
	Key    string // object key, or the path for files
}

func Parse(uri string) (Location, error) {
	if uri == "-" {
		return Location{Scheme: "stdin"}, nil
	}
	for _, scheme := range []string{"s3", "gs"} {
		prefix := scheme + "://"
		if !strings.HasPrefix(uri, prefix) {
			continue
		}
		bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, prefix), "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("Expected %sbucket/key. Found: %s", prefix, uri)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	}
	if uri == "" {
		return Location{}, fmt.Errorf("Empty source")
	}
	return Location{Scheme: "file", Key: uri}, nil
}

// Read loads the whole source named by uri
func (l *Loader) Read(ctx context.Context, uri string) ([]byte, error) {
	loc, err := Parse(uri)
	if err != nil {
		return nil, err
	}
	switch loc.Scheme {
	case "stdin":
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		return ioutil.ReadAll(bufio.NewReader(in))
	case "s3":
		if l.S3 == nil {
			l.S3 = &S3Fetcher{CredentialsPath: l.CredentialsPath}
		}
		return fetch(ctx, l.S3, loc)
	case "gs":
		if l.GCS == nil {
			l.GCS = &GCSFetcher{CredentialsPath: l.CredentialsPath}
		}
		return fetch(ctx, l.GCS, loc)
	}
	return ReadFile(loc.Key)
}

func fetch(ctx context.Context, f Fetcher, loc Location) ([]byte, error) {
	buf, err := f.Fetch(ctx, loc.Bucket, loc.Key)
	if err != nil {
		return nil, fmt.Errorf("%s://%s/%s: %v", loc.Scheme, loc.Bucket, loc.Key, err)
	}
	return buf, nil
}

func ReadFile(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadPair loads the reference and the hypothesis, in that order
func (l *Loader) ReadPair(ctx context.Context, ref, hyp string) (string, string, error) {
	if ref == "-" && hyp == "-" {
		return "", "", fmt.Errorf("Only one of reference and hypothesis can be stdin")
	}
	r, err := l.Read(ctx, ref)
	if err != nil {
		return "", "", err
	}
	h, err := l.Read(ctx, hyp)
	if err != nil {
		return "", "", err
	}
	return string(r), string(h), nil
}
