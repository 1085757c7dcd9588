package util

import "time"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// 上传后内容不可变，文件响应缓存一小时
const FileCacheMaxAge = time.Hour
