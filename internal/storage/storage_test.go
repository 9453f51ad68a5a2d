package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfmanager/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (Storage, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "documents")
	s, err := NewLocal(root)
	require.NoError(t, err)
	return s, root
}

func TestLocal_EnsureRoot(t *testing.T) {
	s, root := newLocal(t)
	ctx := context.Background()

	_, err := os.Stat(root)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, s.EnsureRoot(ctx))
	st, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, st.IsDir())

	// idempotent
	assert.NoError(t, s.EnsureRoot(ctx))
}

func TestLocal_PutGetDelete(t *testing.T) {
	s, root := newLocal(t)
	ctx := context.Background()
	require.NoError(t, s.EnsureRoot(ctx))

	info, err := s.Put(ctx, "report.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{
		Size:        8,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "report.pdf"), info.Key)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	// no temp files left behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	rc, got, err := s.Get(ctx, info.Key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), got.Size)

	require.NoError(t, s.Delete(ctx, info.Key))
	_, err = os.Stat(info.Key)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	err = s.Delete(ctx, info.Key)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocal_PutExistingKey(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		overwrite bool
		wantErr   error
		wantBody  string
	}{
		{name: "refused by default", wantErr: ErrExists, wantBody: "first"},
		{name: "replaced with overwrite", overwrite: true, wantBody: "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, root := newLocal(t)
			require.NoError(t, s.EnsureRoot(ctx))

			first, err := s.Put(ctx, "a.pdf", strings.NewReader("first"), PutObjectOptions{Size: -1})
			require.NoError(t, err)
			_, err = s.Put(ctx, "a.pdf", strings.NewReader("second"), PutObjectOptions{Size: -1, Overwrite: tt.overwrite})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			b, err := os.ReadFile(first.Key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(b))

			// no temp files left behind either way
			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocal_PutReaderError(t *testing.T) {
	s, root := newLocal(t)
	ctx := context.Background()
	require.NoError(t, s.EnsureRoot(ctx))

	_, err := s.Put(ctx, "broken.pdf", failingReader{}, PutObjectOptions{Size: -1})
	assert.ErrorContains(t, err, "client went away")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocal_RejectsKeysOutsideRoot(t *testing.T) {
	s, _ := newLocal(t)
	ctx := context.Background()
	require.NoError(t, s.EnsureRoot(ctx))

	for _, key := range []string{"../escape.pdf", "/etc/passwd", ".", ""} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
			assert.ErrorIs(t, err, ErrOutsideRoot)
			assert.ErrorIs(t, s.Delete(ctx, key), ErrOutsideRoot)
		})
	}
}

func TestNewLocal_EmptyDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}, "endpoint is required"},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "c"}, "credentials are required"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.ErrorContains(t, err, tt.want)
			assert.Nil(t, s)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		cfg := &config.AppConfig{Storage: config.StorageConfig{Driver: DriverLocal, UploadDir: t.TempDir()}}
		s, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &localStorage{}, s)
	})

	t.Run("minio", func(t *testing.T) {
		cfg := &config.AppConfig{
			Storage: config.StorageConfig{Driver: DriverMinIO},
			MinIO:   config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "pdfs"},
		}
		s, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &minioStorage{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := New(&config.AppConfig{Storage: config.StorageConfig{Driver: "ftp"}})
		assert.ErrorContains(t, err, `unknown storage driver "ftp"`)
	})
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "report.pdf", objectKey("/report.pdf"))
	assert.Equal(t, "report.pdf", objectKey("report.pdf"))
}
