package esp_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"content-catalog/core/esp"
	"content-catalog/core/esp/esptest"
	"content-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	data := esptest.NewPlugin(0).Record(esp.TagCELL, 0x1, esptest.EDID("Home")).Bytes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.esp"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Meshes"), 0o755))

	src := esp.DirSource{Root: dir}

	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A.esp"}, names)

	c, err := src.Open(context.Background(), "A.esp")
	require.NoError(t, err)
	defer c.Close()
	assert.True(t, c.NextRecord())
	assert.True(t, c.NextRecord())
	assert.Equal(t, esp.TagCELL, c.RecordType())

	_, err = src.Open(context.Background(), "Missing.esp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBucketSource_Open(t *testing.T) {
	data := esptest.NewPlugin(0).Record(esp.TagCELL, 0x2, esptest.EDID("Away")).Bytes()

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "plugins", "data/B.esp", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	client.On("GetObject", mock.Anything, "plugins", "data/C.esp", mock.Anything).
		Return(nil, errors.New("no such key"))

	src := esp.BucketSource{Client: client, Bucket: "plugins", Prefix: "data"}

	c, err := src.Open(context.Background(), "B.esp")
	require.NoError(t, err)
	assert.True(t, c.NextRecord())
	assert.True(t, c.NextRecord())
	assert.Equal(t, uint32(0x2), c.RecordFormID())
	assert.NoError(t, c.Close())

	_, err = src.Open(context.Background(), "C.esp")
	assert.ErrorContains(t, err, "no such key")

	client.AssertExpectations(t)
}

func TestBucketSource_List(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 4)
	ch <- minio.ObjectInfo{Key: "data/Skyrim.esm"}
	ch <- minio.ObjectInfo{Key: "data/readme.md"}
	ch <- minio.ObjectInfo{Key: "data/textures/"}
	ch <- minio.ObjectInfo{Key: "data/Foo.esl"}
	close(ch)
	client.On("ListObjects", mock.Anything, "plugins", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	src := esp.BucketSource{Client: client, Bucket: "plugins", Prefix: "data"}
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Skyrim.esm", "Foo.esl"}, names)
}

func TestBucketSource_Check(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "plugins").Return(false, nil)
		err := esp.BucketSource{Client: client, Bucket: "plugins"}.Check(context.Background())
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("Bucket Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "plugins").Return(true, nil)
		err := esp.BucketSource{Client: client, Bucket: "plugins"}.Check(context.Background())
		assert.NoError(t, err)
	})
}
