// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/nexcart/storefront/internal/config"
	"github.com/nexcart/storefront/internal/utils"
)

// LocalImagePrefix is the URL path the router serves the upload directory under.
const LocalImagePrefix = "/static/images/"

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	// Replaced is set when a file with the same name was already stored.
	Replaced bool `json:"replaced"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Local filesystem storage
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// EnsureUploadDir creates the local upload directory when storing on disk.
func (s *StorageService) EnsureUploadDir() error {
	if s.UsesS3() {
		return nil
	}
	if err := os.MkdirAll(s.config.Storage.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *StorageService) ProductImageOptions() UploadOptions {
	return UploadOptions{
		Folder:       "products",
		MaxSize:      s.config.Storage.MaxUploadSize,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		IsPublic:     true,
	}
}

// UploadFile stores the file under its sanitized original name. Problems with
// the file itself are reported wrapped in ErrInvalidUpload.
func (s *StorageService) UploadFile(file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	filename := utils.SecureFilename(header.Filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: file name %q is not usable", ErrInvalidUpload, header.Filename)
	}

	// Validate file size
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("%w: file size %d bytes exceeds maximum allowed size %d bytes", ErrInvalidUpload, header.Size, options.MaxSize)
	}

	// Validate file type
	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("%w: file type %q is not allowed", ErrInvalidUpload, fileExt)
		}
	}

	// Read file content
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if options.MaxSize > 0 && int64(len(fileBytes)) > options.MaxSize {
		return nil, fmt.Errorf("%w: file exceeds maximum allowed size %d bytes", ErrInvalidUpload, options.MaxSize)
	}

	mtype := mimetype.Detect(fileBytes)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: content type %s is not an image", ErrInvalidUpload, mtype.String())
	}

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, filename, path.Join(options.Folder, filename), mtype.String(), options.IsPublic)
	}

	return s.uploadToLocal(fileBytes, filename, mtype.String())
}

func (s *StorageService) uploadToS3(fileBytes []byte, name, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	_, headErr := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		Name:     name,
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
		Replaced: headErr == nil,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, filename, contentType string) (*UploadResult, error) {
	if err := s.EnsureUploadDir(); err != nil {
		return nil, err
	}

	dest := filepath.Join(s.config.Storage.UploadDir, filename)
	_, statErr := os.Stat(dest)
	if err := os.WriteFile(dest, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &UploadResult{
		Name:     filename,
		URL:      LocalImagePrefix + url.PathEscape(filename),
		Key:      filename,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
		Replaced: statErr == nil,
	}, nil
}

// DeleteFile removes a stored image by name.
func (s *StorageService) DeleteFile(name string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.Storage.UploadDir, name))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(path.Join(s.ProductImageOptions().Folder, name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ImageURL resolves a stored image name to a public URL. It returns "" when
// there is no image to show, which the templates render as a placeholder.
func (s *StorageService) ImageURL(name string) string {
	if name == "" {
		return ""
	}

	if s.s3Client != nil {
		return s.getS3URL(path.Join(s.ProductImageOptions().Folder, name))
	}

	if _, err := os.Stat(filepath.Join(s.config.Storage.UploadDir, name)); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("image", name).Warn("Failed to stat product image")
		}
		return ""
	}
	return LocalImagePrefix + url.PathEscape(name)
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
