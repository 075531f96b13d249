package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files",
	}, logger)
	require.NoError(t, err)
	return s
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	key := EnclosureKey("req-1", "activityScheduleFile", "schedule.pdf")

	err := s.Put(ctx, key, strings.NewReader("%PDF-1.4 test"), PutOptions{ContentType: "application/pdf"})
	require.NoError(t, err)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, info, err := s.Get(ctx, key)
	require.NoError(t, err)
	defer data.Close()

	body, err := io.ReadAll(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(body))
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.Equal(t, int64(13), info.Size)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStoragePutRespectsMaxSize(t *testing.T) {
	s := newTestStorage(t)

	err := s.Put(context.Background(), "requests/r/enclosures/f/too-big.pdf",
		strings.NewReader("0123456789"), PutOptions{MaxSize: 4})
	require.Error(t, err)
	assert.True(t, IsTooLarge(err))
}

func TestLocalStoragePutRejectsExistingKey(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	key := "requests/r/enclosures/f/doc.pdf"

	require.NoError(t, s.Put(ctx, key, strings.NewReader("one"), PutOptions{}))

	err := s.Put(ctx, key, strings.NewReader("two"), PutOptions{})
	require.ErrorIs(t, err, ErrKeyExists)

	require.NoError(t, s.Put(ctx, key, strings.NewReader("two"), PutOptions{Overwrite: true}))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	err := s.Put(context.Background(), "../outside.txt", strings.NewReader("x"), PutOptions{})
	require.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = s.Get(context.Background(), "a/../../etc/passwd")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestEnclosureKeyKeepsExtension(t *testing.T) {
	key := EnclosureKey("42", "driverAuthFile", "authorization.PDF")
	assert.True(t, strings.HasPrefix(key, "requests/42/enclosures/driverAuthFile/"))
	assert.True(t, strings.HasSuffix(key, ".PDF"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectContentType("application/pdf", "x.bin", nil))
	assert.Equal(t, "application/pdf", DetectContentType("", "schedule.pdf", nil))
	assert.Equal(t, "application/octet-stream", DetectContentType("", "unknown.zzz", nil))
}

func TestIsAllowedEnclosureType(t *testing.T) {
	assert.True(t, IsAllowedEnclosureType("application/pdf"))
	assert.True(t, IsAllowedEnclosureType("image/jpeg; charset=binary"))
	assert.False(t, IsAllowedEnclosureType("application/x-msdownload"))
}
