package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_hub_backend/internal/config"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/monitoring"
	"exam_hub_backend/pkg/tracing"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
)

const metaOriginalName = "original-name"

// BlobInfo 写入时附带的元数据
type BlobInfo struct {
	ContentType  string
	OriginalName string
	Metadata     map[string]string
}

// Blob 读取结果，Body 由调用方关闭
type Blob struct {
	Key          string
	Body         io.ReadCloser
	Size         int64
	ContentType  string
	OriginalName string
	Metadata     map[string]string
}

// BlobStore 以存储生成的不透明 key 保存二进制文件
type BlobStore interface {
	Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error)
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
	Ready(ctx context.Context) error
}

// LocalBlobStore 本地存储实现，元数据保存在同名 .meta.json 文件中
type LocalBlobStore struct {
	Root string
}

type localMeta struct {
	ContentType  string            `json:"contentType"`
	OriginalName string            `json:"originalName"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func NewLocalBlobStore(root string) *LocalBlobStore {
	return &LocalBlobStore{Root: root}
}

func (p *LocalBlobStore) path(key string) string {
	return filepath.Join(p.Root, key[:2], key)
}

func (p *LocalBlobStore) Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error) {
	key := model.GenerateUUID()
	dst := p.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), key+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	written, err := io.Copy(tmp, reader)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	meta, err := json.Marshal(localMeta{
		ContentType:  info.ContentType,
		OriginalName: info.OriginalName,
		Size:         written,
		Metadata:     info.Metadata,
	})
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.WriteFile(dst+".meta.json", meta, 0644); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		os.Remove(dst + ".meta.json")
		return "", err
	}
	return key, nil
}

func (p *LocalBlobStore) Get(ctx context.Context, key string) (*Blob, error) {
	if !model.IsUUID(key) {
		return nil, util.ErrInvalidReference
	}
	dst := p.path(key)

	raw, err := os.ReadFile(dst + ".meta.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.ErrFileNotFound
		}
		return nil, err
	}
	var meta localMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}

	f, err := os.Open(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.ErrFileNotFound
		}
		return nil, err
	}
	return &Blob{
		Key:          key,
		Body:         f,
		Size:         meta.Size,
		ContentType:  meta.ContentType,
		OriginalName: meta.OriginalName,
		Metadata:     meta.Metadata,
	}, nil
}

func (p *LocalBlobStore) Delete(ctx context.Context, key string) error {
	if !model.IsUUID(key) {
		return util.ErrInvalidReference
	}
	dst := p.path(key)
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(dst + ".meta.json"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (p *LocalBlobStore) Ready(ctx context.Context) error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return nil
}

// MinioBlobStore MinIO存储实现
type MinioBlobStore struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioBlobStore(cfg *config.StorageConfig) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioBlobStore{Config: cfg, Client: client}, nil
}

func (p *MinioBlobStore) Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error) {
	key := model.GenerateUUID()
	meta := make(map[string]string, len(info.Metadata)+1)
	for k, v := range info.Metadata {
		meta[k] = url.QueryEscape(v)
	}
	meta[metaOriginalName] = url.QueryEscape(info.OriginalName)

	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  info.ContentType,
		UserMetadata: meta,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (p *MinioBlobStore) Get(ctx context.Context, key string) (*Blob, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, p.translate(err)
	}
	// GetObject 是惰性的，Stat 才会真正请求
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, p.translate(err)
	}

	meta := make(map[string]string, len(stat.UserMetadata))
	var originalName string
	for k, v := range stat.UserMetadata {
		decoded, derr := url.QueryUnescape(v)
		if derr != nil {
			decoded = v
		}
		if strings.EqualFold(k, metaOriginalName) {
			originalName = decoded
			continue
		}
		meta[strings.ToLower(k)] = decoded
	}

	return &Blob{
		Key:          key,
		Body:         obj,
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		OriginalName: originalName,
		Metadata:     meta,
	}, nil
}

func (p *MinioBlobStore) translate(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchObject":
		return util.ErrFileNotFound
	case "NoSuchBucket":
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return err
}

func (p *MinioBlobStore) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, key, minio.RemoveObjectOptions{})
}

// Ready 桶不存在时自动创建
func (p *MinioBlobStore) Ready(ctx context.Context) error {
	exists, err := p.Client.BucketExists(ctx, p.Config.MinioBucket)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	if exists {
		return nil
	}
	if err := p.Client.MakeBucket(ctx, p.Config.MinioBucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return nil
}

// OSSBlobStore 阿里云OSS存储实现
type OSSBlobStore struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSBlobStore(cfg *config.StorageConfig) (*OSSBlobStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSBlobStore{Config: cfg, Client: client}, nil
}

func (p *OSSBlobStore) bucket() (*oss.Bucket, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return bucket, nil
}

func (p *OSSBlobStore) Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error) {
	bucket, err := p.bucket()
	if err != nil {
		return "", err
	}

	key := model.GenerateUUID()
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(info.ContentType),
		oss.Meta(metaOriginalName, url.QueryEscape(info.OriginalName)),
	}
	for k, v := range info.Metadata {
		opts = append(opts, oss.Meta(k, url.QueryEscape(v)))
	}
	if err := bucket.PutObject(key, reader, opts...); err != nil {
		return "", err
	}
	return key, nil
}

func (p *OSSBlobStore) Get(ctx context.Context, key string) (*Blob, error) {
	bucket, err := p.bucket()
	if err != nil {
		return nil, err
	}

	header, err := bucket.GetObjectDetailedMeta(key, oss.WithContext(ctx))
	if err != nil {
		return nil, p.translate(err)
	}
	body, err := bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		return nil, p.translate(err)
	}

	size, _ := strconv.ParseInt(header.Get("Content-Length"), 10, 64)
	meta := make(map[string]string)
	var originalName string
	prefix := strings.ToLower(oss.HTTPHeaderOssMetaPrefix)
	for k := range header {
		lower := strings.ToLower(k)
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		name := strings.TrimPrefix(lower, prefix)
		decoded, derr := url.QueryUnescape(header.Get(k))
		if derr != nil {
			decoded = header.Get(k)
		}
		if name == metaOriginalName {
			originalName = decoded
			continue
		}
		meta[name] = decoded
	}

	return &Blob{
		Key:          key,
		Body:         body,
		Size:         size,
		ContentType:  header.Get("Content-Type"),
		OriginalName: originalName,
		Metadata:     meta,
	}, nil
}

func (p *OSSBlobStore) translate(err error) error {
	var svcErr oss.ServiceError
	if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
		return util.ErrFileNotFound
	}
	return err
}

func (p *OSSBlobStore) Delete(ctx context.Context, key string) error {
	bucket, err := p.bucket()
	if err != nil {
		return err
	}
	return bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (p *OSSBlobStore) Ready(ctx context.Context) error {
	ok, err := p.Client.IsBucketExist(p.Config.OSSBucket)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: bucket %s does not exist", util.ErrStorageUnavailable, p.Config.OSSBucket)
	}
	return nil
}

// StorageService 存储服务，对具体实现加上追踪与指标
type StorageService struct {
	Provider BlobStore
}

// NewStorageService 按配置选择存储实现，由进程入口创建并注入
func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	var provider BlobStore
	switch cfg.Type {
	case util.StorageMinio:
		p, err := NewMinioBlobStore(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	case util.StorageOSS:
		p, err := NewOSSBlobStore(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	case "", util.StorageLocal:
		provider = NewLocalBlobStore(cfg.LocalPath)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
	return &StorageService{Provider: provider}, nil
}

func (s *StorageService) Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "blob.put")
	defer span.End()
	span.SetAttributes(attribute.String("blob.content_type", info.ContentType), attribute.Int64("blob.size", size))

	counter := &countingReader{r: reader}
	key, err := s.Provider.Put(ctx, counter, size, info)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	monitoring.BlobBytesUploaded.Add(float64(counter.n))
	span.SetAttributes(attribute.String("blob.key", key))
	return key, nil
}

func (s *StorageService) Get(ctx context.Context, key string) (*Blob, error) {
	ctx, span := tracing.Tracer.Start(ctx, "blob.get")
	defer span.End()
	span.SetAttributes(attribute.String("blob.key", key))

	blob, err := s.Provider.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return blob, nil
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Provider.Delete(ctx, key)
}

func (s *StorageService) Ready(ctx context.Context) error {
	return s.Provider.Ready(ctx)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
