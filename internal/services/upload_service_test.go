package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload_PutsObjectAndBuildsURL(t *testing.T) {
	fake := &fakeS3{}
	svc := &uploadService{client: fake, bucket: "media", publicURL: "https://cdn.example.com"}

	url, err := svc.Upload(context.Background(), "post", "Photo.PNG", "image/png", []byte("data"))
	require.NoError(t, err)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, "media", *fake.lastInput.Bucket)
	assert.Equal(t, "image/png", *fake.lastInput.ContentType)

	key := *fake.lastInput.Key
	assert.True(t, strings.HasPrefix(key, "post/"))
	assert.True(t, strings.HasSuffix(key, ".png"), "extension is kept, lowercased: %s", key)

	body, err := io.ReadAll(fake.lastInput.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), body)

	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestUpload_UniqueKeys(t *testing.T) {
	fake := &fakeS3{}
	svc := &uploadService{client: fake, bucket: "media", publicURL: "https://cdn.example.com"}

	u1, err := svc.Upload(context.Background(), "uploads", "a.jpg", "image/jpeg", nil)
	require.NoError(t, err)
	u2, err := svc.Upload(context.Background(), "uploads", "a.jpg", "image/jpeg", nil)
	require.NoError(t, err)
	assert.NotEqual(t, u1, u2)
}

func TestUpload_PropagatesError(t *testing.T) {
	fake := &fakeS3{err: context.DeadlineExceeded}
	svc := &uploadService{client: fake, bucket: "media", publicURL: "https://cdn.example.com"}

	_, err := svc.Upload(context.Background(), "uploads", "a.jpg", "image/jpeg", nil)
	assert.Error(t, err)
}
