// Package storage 提供了与对象存储服务（MinIO）交互的功能。
// 博客中的图片（站点背景图、用户头像）上传后以内容 MD5 命名存入存储桶。
package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"go-blog/internal/config"
	"go-blog/pkg/log"
)

// MinioClient 是一个全局的 MinIO 客户端实例。
var MinioClient *minio.Client

// InitMinIO 初始化 MinIO 客户端并确保指定的存储桶存在。
func InitMinIO(cfg config.MinIOConfig) {
	var err error

	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	log.Info("MinIO 客户端初始化成功")

	ctx := context.Background()
	bucketName := cfg.BucketName
	exists, err := MinioClient.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("检查 MinIO 存储桶失败", err)
	}

	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", bucketName)
		if err := MinioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("创建 MinIO 存储桶失败", err)
		}
		log.Infof("存储桶 '%s' 创建成功", bucketName)
	}
}

// ObjectName 根据图片内容和原始文件名计算对象名：<目录>/<内容md5>.<扩展名>。
// 相同内容的图片重复上传会覆盖同一个对象，天然去重。
func ObjectName(dir, filename string, data []byte) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%x.%s", dir, md5.Sum(data), ext)
}

// UploadImage 将图片内容上传到存储桶并返回对象名。
func UploadImage(ctx context.Context, cfg config.MinIOConfig, objectName, contentType string, data []byte) error {
	_, err := MinioClient.PutObject(ctx, cfg.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("上传对象失败: %w", err)
	}
	return nil
}

// PublicURL 拼接对象对外可访问的完整 URL。
func PublicURL(cfg config.MinIOConfig, objectName string) string {
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + objectName
}
