package util

import (
	"bufio"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffMimeType 读取文件头判断 MIME 类型，返回的 Reader 仍包含已读取的字节
func SniffMimeType(reader io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(reader, 3072)
	header, err := br.Peek(3072)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, err
	}
	mtype := mimetype.Detect(header)
	return mtype.String(), br, nil
}

// MimeAllowed allowedTypes 支持前缀（"image/"）或完整类型，忽略参数部分
func MimeAllowed(mimeType string, allowedTypes []string) bool {
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(strings.ToLower(base))
	for _, allowed := range allowedTypes {
		allowed = strings.ToLower(allowed)
		if strings.HasSuffix(allowed, "/") {
			if strings.HasPrefix(base, allowed) {
				return true
			}
			continue
		}
		if base == allowed {
			return true
		}
	}
	return false
}

// ValidateMimeType 深度校验文件 MIME 类型
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, io.Reader, error) {
	mimeType, r, err := SniffMimeType(reader)
	if err != nil {
		return "", nil, err
	}
	if !MimeAllowed(mimeType, allowedTypes) {
		return mimeType, r, ErrUnsupportedFileType
	}
	return mimeType, r, nil
}
