package media

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://media.example.com/images/abc123.jpg", "abc123"},
		{"https://res.cloudinary.com/demo/image/upload/v1712/xyz.tar.gz", "xyz"},
		{"https://bucket.s3.eu-west-1.amazonaws.com/posts/5f1c", "5f1c"},
		{"https://media.example.com/images/abc123.png?version=2", "abc123"},
		{"abc123.jpg", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, StorageID(tt.url))
		})
	}
}

// 1x1 transparent PNG
const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func TestDecodeDataURI(t *testing.T) {
	data, err := decodeDataURI("data:image/png;base64," + pngBase64)
	require.NoError(t, err)
	raw, _ := base64.StdEncoding.DecodeString(pngBase64)
	assert.Equal(t, raw, data)

	_, err = decodeDataURI("https://example.com/a.png")
	assert.ErrorIs(t, err, errNotDataURI)

	_, err = decodeDataURI("data:image/png," + pngBase64)
	assert.ErrorIs(t, err, errNotDataURI)

	_, err = decodeDataURI("data:image/png;base64,%%%")
	assert.Error(t, err)
}

type fakeCloudinary struct {
	uploaded   []interface{}
	destroyed  []string
	uploadRes  *uploader.UploadResult
	destroyRes *uploader.DestroyResult
	err        error
}

func (f *fakeCloudinary) Upload(_ context.Context, file interface{}, _ uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploaded = append(f.uploaded, file)
	return f.uploadRes, f.err
}

func (f *fakeCloudinary) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params.PublicID)
	return f.destroyRes, f.err
}

func TestCloudinaryStore(t *testing.T) {
	fake := &fakeCloudinary{
		uploadRes:  &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/abc123.jpg"},
		destroyRes: &uploader.DestroyResult{Result: "ok"},
	}
	store := &CloudinaryStore{api: fake}

	url, err := store.Upload(context.Background(), "data:image/png;base64,"+pngBase64)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/abc123.jpg", url)

	require.NoError(t, store.Destroy(context.Background(), StorageID(url)))
	assert.Equal(t, []string{"abc123"}, fake.destroyed)
}

func TestCloudinaryStoreErrors(t *testing.T) {
	fake := &fakeCloudinary{
		uploadRes:  &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}},
		destroyRes: &uploader.DestroyResult{Error: api.ErrorResp{Message: "boom"}},
	}
	store := &CloudinaryStore{api: fake}

	_, err := store.Upload(context.Background(), "not an image")
	assert.ErrorContains(t, err, "Invalid image file")
	assert.ErrorContains(t, store.Destroy(context.Background(), "abc"), "boom")

	fake.err = errors.New("network down")
	_, err = store.Upload(context.Background(), "x")
	assert.ErrorContains(t, err, "network down")
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, S3Config{Bucket: "feed-media", Region: "eu-west-1", Folder: "/posts/"})

	url, err := store.Upload(context.Background(), "data:image/png;base64,"+pngBase64)
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	put := fake.puts[0]
	assert.Equal(t, "feed-media", *put.Bucket)
	assert.Equal(t, "image/png", *put.ContentType)
	assert.True(t, strings.HasPrefix(*put.Key, "posts/"))
	assert.Equal(t, "https://feed-media.s3.eu-west-1.amazonaws.com/"+*put.Key, url)

	require.NoError(t, store.Destroy(context.Background(), StorageID(url)))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, *put.Key, *fake.deletes[0].Key)
}

func TestS3StoreRejectsNonImages(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, S3Config{Bucket: "b", Region: "r", PublicBaseURL: "https://cdn.example.com/"})

	payload := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello world"))
	_, err := store.Upload(context.Background(), payload)
	assert.ErrorContains(t, err, "unsupported media type")

	_, err = store.Upload(context.Background(), "https://example.com/cat.png")
	assert.ErrorIs(t, err, errNotDataURI)
	assert.Empty(t, fake.puts)
}
