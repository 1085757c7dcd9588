package controller

import (
	"exam_hub_backend/internal/service"
	"exam_hub_backend/internal/util"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// openUpload 调用方负责关闭返回的文件
func openUpload(fh *multipart.FileHeader) (*service.UploadedFile, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.UploadedFile{Reader: f, Size: fh.Size, Filename: fh.Filename}, f, nil
}

// writeFileResolution 重定向或以 inline 方式流式输出文件
func writeFileResolution(ctx *gin.Context, res *service.FileResolution) {
	if res.IsRedirect() {
		ctx.Redirect(http.StatusFound, res.RedirectURL)
		return
	}
	defer res.Blob.Body.Close()

	cacheControl := "private, no-cache"
	if !res.Private && res.CacheMaxAge > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", int(res.CacheMaxAge.Seconds()))
	}

	headers := map[string]string{
		"Content-Disposition":    mime.FormatMediaType("inline", map[string]string{"filename": res.OriginalName}),
		"Cache-Control":          cacheControl,
		"X-Content-Type-Options": "nosniff",
	}
	size := res.Blob.Size
	if size <= 0 {
		size = -1
	}
	contentType := res.ContentType
	if contentType == "" {
		contentType = util.MimeOctetStream
	}
	ctx.DataFromReader(http.StatusOK, size, contentType, res.Blob.Body, headers)
}
