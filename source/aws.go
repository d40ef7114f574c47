package source

import (
	"context"
	"io/ioutil"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Fetcher struct {
	CredentialsPath string
}

// Fetch downloads s3://bucket/key using the shared credentials and config
// files found in CredentialsPath
func (c *S3Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	const (
		keyName    = "credentials"
		configName = "config"
	)

	opts := session.Options{SharedConfigState: session.SharedConfigEnable}
	if c.CredentialsPath != "" {
		opts.SharedConfigFiles = []string{
			path.Join(c.CredentialsPath, keyName),
			path.Join(c.CredentialsPath, configName),
		}
	}
	s, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, err
	}
	client := s3.New(s, aws.NewConfig().WithMaxRetries(3))

	out, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return ioutil.ReadAll(out.Body)
}
