package services

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leasedesk/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	up := NewLocalUploader(dir, "http://localhost:8080/files/")

	res, err := up.Upload(context.Background(), file("bien-ban.pdf", "nội dung"), "uploads")
	require.NoError(t, err)
	assert.Equal(t, "bien-ban.pdf", res.FileName)
	assert.True(t, strings.HasPrefix(res.PublicID, "uploads/"))
	assert.True(t, strings.HasSuffix(res.PublicID, ".pdf"))
	assert.Equal(t, "http://localhost:8080/files/"+res.PublicID, res.URL)

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
	require.NoError(t, err)
	assert.Equal(t, "nội dung", string(raw))

	require.NoError(t, up.Delete(context.Background(), res.PublicID))
	assert.NoFileExists(t, filepath.Join(dir, filepath.FromSlash(res.PublicID)))
}

// failingUploader lỗi ở lần upload thứ failAt
type failingUploader struct {
	failAt  int
	calls   int
	deleted []string
}

func (u *failingUploader) Upload(_ context.Context, f UploadFile, _ string) (dto.UploadResult, error) {
	u.calls++
	if u.calls == u.failAt {
		return dto.UploadResult{}, stderrors.New("disk full")
	}
	return dto.UploadResult{FileName: f.Name, PublicID: f.Name}, nil
}

func (u *failingUploader) Delete(_ context.Context, publicID string) error {
	u.deleted = append(u.deleted, publicID)
	return nil
}

func TestUploadAll_CleansUpOnFailure(t *testing.T) {
	up := &failingUploader{failAt: 3}
	_, err := UploadAll(context.Background(), up, []UploadFile{file("a", ""), file("b", ""), file("c", "")}, "x")
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, up.deleted)

	up = &failingUploader{}
	res, err := UploadAll(context.Background(), up, []UploadFile{file("a", ""), file("b", "")}, "x")
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Empty(t, up.deleted)
}
