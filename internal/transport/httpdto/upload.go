package httpdto

// PresignUploadRequest holds query parameters for GET /api/upload/presign
type PresignUploadRequest struct {
	FileName    string `form:"file_name" binding:"required"`
	ContentType string `form:"content_type" binding:"required"`
	FileSize    int64  `form:"file_size" binding:"required,gt=0"`
}
