package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

const avatarPrefix = "avatars/"

// AvatarStore keeps profile pictures in a blob bucket.
type AvatarStore struct {
	bucket *blob.Bucket
	now    func() time.Time
}

// NewAvatarStore wraps an already opened bucket.
func NewAvatarStore(bucket *blob.Bucket) *AvatarStore {
	return &AvatarStore{bucket: bucket, now: time.Now}
}

// OpenFileBucket opens (and creates when missing) a directory-backed bucket.
func OpenFileBucket(dir string) (*blob.Bucket, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrapf(err, "open upload dir %s", dir)
	}
	return bucket, nil
}

// AvatarKey builds the object key for an upload: avatars/{userId}-{unixMillis}-{name}.
func AvatarKey(userID int64, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" || name == "." || name == "/" {
		name = "avatar"
	}
	return fmt.Sprintf("%s%d-%d-%s", avatarPrefix, userID, now.UnixMilli(), name)
}

// Put stores an upload for userID under a fresh key and returns that key.
func (s *AvatarStore) Put(ctx context.Context, userID int64, filename, contentType string, r io.Reader) (string, error) {
	key := AvatarKey(userID, filename, s.now())
	if err := s.Save(ctx, key, contentType, r); err != nil {
		return "", err
	}
	return key, nil
}

// Save streams r into key.
func (s *AvatarStore) Save(ctx context.Context, key, contentType string, r io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "open avatar writer")
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return errors.Wrap(err, "write avatar")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close avatar writer")
	}
	return nil
}

// Delete removes key. A missing object is not an error.
func (s *AvatarStore) Delete(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, avatarPrefix) {
		return nil
	}
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "delete avatar")
	}
	return nil
}

// Open returns a reader over key; callers close it.
func (s *AvatarStore) Open(ctx context.Context, key string) (*blob.Reader, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errNotFound(key)
		}
		return nil, errors.Wrap(err, "open avatar")
	}
	return r, nil
}

// Close releases the bucket.
func (s *AvatarStore) Close() error {
	return s.bucket.Close()
}
