package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/config"
	"github.com/whistle-guardian/api-go/sanitize"
	"github.com/whistle-guardian/api-go/utils"
)

// maxEvidenceFileSize is the per-file ceiling for evidence uploads.
const maxEvidenceFileSize = 10 * 1024 * 1024 // 10MB

type UploadController struct {
	DB            *gorm.DB
	StorageClient *s3.Client
	StorageConfig *config.StorageConfig
}

func NewUploadController(db *gorm.DB) *UploadController {
	storageConfig := config.GetStorageConfig()
	return &UploadController{
		DB:            db,
		StorageClient: config.NewStorageClient(storageConfig),
		StorageConfig: storageConfig,
	}
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// UploadEvidence accepts a multipart batch of evidence files, strips image
// metadata, stores each file in the evidence bucket and returns the public
// URLs to attach to a report. The whole batch is validated before anything
// is persisted.
func (uc *UploadController) UploadEvidence(c *gin.Context) {
	user := utils.GetUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	for _, fileHeader := range files {
		contentType := fileHeader.Header.Get("Content-Type")
		if !uc.isValidFileType(contentType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images and documents are allowed."})
			return
		}
		if !uc.isValidFileSize(fileHeader.Size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File %s exceeds the 10MB size limit", fileHeader.Filename)})
			return
		}
	}

	var fileUrls []string
	for _, fileHeader := range files {
		contentType := fileHeader.Header.Get("Content-Type")

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// Evidence images are re-encoded to discard EXIF/GPS metadata
		// before they ever reach the bucket.
		data, err := sanitize.File(file, contentType)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File %s is not a valid %s", fileHeader.Filename, contentType)})
			return
		}

		key := uc.generateEvidenceKey(user.UserID, fileHeader.Filename)
		if err := uc.putObject(c.Request.Context(), key, contentType, data); err != nil {
			zap.S().Errorw("failed to store evidence file", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		fileUrls = append(fileUrls, fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key))
	}

	c.JSON(http.StatusOK, gin.H{"fileUrls": fileUrls})
}

// GetPresignedURL hands out a direct-to-bucket upload URL for large evidence
// files the client prefers not to proxy through the API.
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.isValidFileType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images and documents are allowed."})
		return
	}
	if !uc.isValidFileSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := uc.generateEvidenceKey(user.UserID, req.FileName)
	presignedURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		zap.S().Errorw("failed to presign upload URL", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
	})
}

// Allowed evidence formats: images plus common document types.
func (uc *UploadController) isValidFileType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/gif",
		"application/pdf", "text/plain", "text/csv",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func (uc *UploadController) isValidFileSize(fileSize int64) bool {
	return fileSize > 0 && fileSize <= maxEvidenceFileSize
}

func (uc *UploadController) generateEvidenceKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("evidence/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) putObject(ctx context.Context, key, contentType string, data []byte) error {
	_, err := uc.StorageClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.StorageClient)
	req, err := presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
