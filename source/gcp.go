package source

import (
	"context"
	"io/ioutil"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSFetcher struct {
	CredentialsPath string
}

// Fetch downloads gs://bucket/key. A gcp.json key file in CredentialsPath is
// used when present, application default credentials otherwise.
func (c *GCSFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	const keyName = "gcp.json"

	var opts []option.ClientOption
	credentialsFile := path.Join(c.CredentialsPath, keyName)
	if _, err := os.Stat(credentialsFile); c.CredentialsPath != "" && err == nil {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}
