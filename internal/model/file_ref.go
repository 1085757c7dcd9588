package model

import (
	"net/url"
	"strings"
)

type FileRefKind int

const (
	FileRefInvalid FileRefKind = iota
	FileRefExternalURL
	FileRefBlobKey
)

func (k FileRefKind) String() string {
	switch k {
	case FileRefExternalURL:
		return "external_url"
	case FileRefBlobKey:
		return "blob_key"
	}
	return "invalid"
}

// FileRef 文件引用：外部 URL（历史数据）或 Blob 存储的 key
type FileRef struct {
	Kind  FileRefKind
	Value string
}

func ExternalURL(u string) FileRef { return FileRef{Kind: FileRefExternalURL, Value: u} }

func BlobKey(k string) FileRef { return FileRef{Kind: FileRefBlobKey, Value: k} }

func (r FileRef) IsExternal() bool { return r.Kind == FileRefExternalURL }

func (r FileRef) IsBlobKey() bool { return r.Kind == FileRefBlobKey }

func (r FileRef) String() string { return r.Value }

// ParseFileRef 带 scheme 的视为外部 URL；否则必须是 UUID 格式的 blob key
func ParseFileRef(raw string) FileRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FileRef{Kind: FileRefInvalid}
	}
	if hasURLScheme(raw) {
		return ExternalURL(raw)
	}
	if IsUUID(raw) {
		return BlobKey(strings.ToLower(raw))
	}
	return FileRef{Kind: FileRefInvalid, Value: raw}
}

func hasURLScheme(raw string) bool {
	i := strings.Index(raw, "://")
	if i <= 0 {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
