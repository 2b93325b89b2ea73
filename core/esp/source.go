package esp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"content-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source opens containers by plugin name and lists the plugins it holds.
type Source interface {
	// Open opens the named container read-only.
	Open(ctx context.Context, name string) (Container, error)
	// List returns the names of all plugins available in the source.
	List(ctx context.Context) ([]string, error)
}

// DirSource serves containers from a local data directory.
type DirSource struct {
	Root string
}

// Open implements Source.
func (s DirSource) Open(ctx context.Context, name string) (Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(filepath.Join(s.Root, filepath.Base(name)))
}

// List implements Source.
func (s DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", s.Root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsPluginName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// BucketSource serves containers from an object storage bucket. Objects are
// downloaded whole and read from memory; the bucket is never written.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (s BucketSource) objectName(name string) string {
	return path.Join(s.Prefix, path.Base(name))
}

// Check verifies that the configured bucket is reachable.
func (s BucketSource) Check(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s not found", s.Bucket)
	}
	return nil
}

// Open implements Source.
func (s BucketSource) Open(ctx context.Context, name string) (Container, error) {
	reader, err := s.Client.GetObject(ctx, s.Bucket, s.objectName(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.objectName(name), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.objectName(name), err)
	}
	return NewBytesReader(data), nil
}

// List implements Source.
func (s BucketSource) List(ctx context.Context) ([]string, error) {
	prefix := s.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var names []string
	for obj := range s.Client.ListObjects(ctx, s.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list plugins: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.Contains(name, "/") || !IsPluginName(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
