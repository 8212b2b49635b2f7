package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"leasedesk/dto"
	"leasedesk/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadFile là một file cần tải lên
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// Uploader lưu file vào backend lưu trữ
type Uploader interface {
	Upload(ctx context.Context, file UploadFile, folder string) (dto.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryUploader lưu file lên Cloudinary
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file UploadFile, folder string) (dto.UploadResult, error) {
	resp, err := u.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return dto.UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload thất bại", err)
	}
	if resp.Error.Message != "" {
		return dto.UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload thất bại", fmt.Errorf("%s", resp.Error.Message))
	}
	return dto.UploadResult{FileName: file.Name, URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// LocalUploader lưu file vào thư mục cục bộ, dùng khi chưa cấu hình Cloudinary
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (u *LocalUploader) Upload(_ context.Context, file UploadFile, folder string) (dto.UploadResult, error) {
	target := filepath.Join(u.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return dto.UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Không thể tạo thư mục upload", err)
	}
	publicID := filepath.ToSlash(filepath.Join(folder, fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString()[:8], filepath.Ext(file.Name))))
	f, err := os.Create(filepath.Join(u.dir, publicID))
	if err != nil {
		return dto.UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload thất bại", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, file.Reader); err != nil {
		return dto.UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload thất bại", err)
	}
	return dto.UploadResult{FileName: file.Name, URL: u.baseURL + "/" + publicID, PublicID: publicID}, nil
}

func (u *LocalUploader) Delete(_ context.Context, publicID string) error {
	return os.Remove(filepath.Join(u.dir, filepath.FromSlash(publicID)))
}

// UploadAll tải lên lần lượt; lỗi giữa chừng sẽ xóa các file đã tải
func UploadAll(ctx context.Context, up Uploader, files []UploadFile, folder string) ([]dto.UploadResult, error) {
	results := make([]dto.UploadResult, 0, len(files))
	for _, f := range files {
		res, err := up.Upload(ctx, f, folder)
		if err != nil {
			Cleanup(ctx, up, results)
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Cleanup xóa các file đã tải lên, bỏ qua lỗi
func Cleanup(ctx context.Context, up Uploader, results []dto.UploadResult) {
	for _, r := range results {
		_ = up.Delete(ctx, r.PublicID)
	}
}
