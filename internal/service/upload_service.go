package service

import (
	"context"
	"errors"

	"go-blog/internal/config"
	"go-blog/pkg/log"
	"go-blog/pkg/storage"
)

// ErrEmptyUpload 表示上传内容为空。
var ErrEmptyUpload = errors.New("上传内容为空")

// UploadService 接口定义了图片上传的业务操作。
type UploadService interface {
	// UploadImage 把图片内容存入对象存储，以内容 MD5 命名，返回可访问的 URL。
	// dir 区分用途（背景图 background_image、头像 head_image）。
	UploadImage(ctx context.Context, dir, filename, contentType string, data []byte) (string, error)
}

// uploadService 是 UploadService 接口的实现。
type uploadService struct {
	minioCfg config.MinIOConfig
}

// NewUploadService 创建一个新的 UploadService 实例。
func NewUploadService(minioCfg config.MinIOConfig) UploadService {
	return &uploadService{minioCfg: minioCfg}
}

// UploadImage 上传图片并返回公开访问 URL。
func (s *uploadService) UploadImage(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	objectName := storage.ObjectName(dir, filename, data)
	if err := storage.UploadImage(ctx, s.minioCfg, objectName, contentType, data); err != nil {
		return "", err
	}

	url := storage.PublicURL(s.minioCfg, objectName)
	log.Infof("图片上传成功: %s", url)
	return url, nil
}
