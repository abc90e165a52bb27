package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"nuptio/pkg/logger"
)

// CloudStorageClient wraps GCS access for storefront media. Objects live
// under public/ (gallery images) or private/ (quote attachments).
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	c := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}

	if err := c.ensureBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return c, nil
}

func (c *CloudStorageClient) ensureBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          3600,
			Methods:         []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type", "x-goog-resumable"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %v", err)
	}

	return nil
}

func objectName(folder, fileType string, isPublic bool) string {
	if !strings.HasPrefix(folder, "public/") && !strings.HasPrefix(folder, "private/") {
		if isPublic {
			folder = "public/" + folder
		} else {
			folder = "private/" + folder
		}
	}

	name := fmt.Sprintf("%s/%s-%s", folder, uuid.New().String(), time.Now().Format("20060102150405"))

	switch fileType {
	case "image/jpeg", "image/jpg":
		name += ".jpg"
	case "image/png":
		name += ".png"
	case "image/webp":
		name += ".webp"
	case "application/pdf":
		name += ".pdf"
	default:
		name += ".bin"
	}

	return name
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	name := objectName(folder, fileType, isPublic)

	obj := c.client.Bucket(c.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if isPublic {
		if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
			return "", fmt.Errorf("failed to set ACL: %v", err)
		}
	}

	logger.Debug("Uploaded %s object %s", fileType, name)

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, name), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	// Expected URL format: https://storage.googleapis.com/bucket-name/object-path
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("invalid GCS URL format")
	}

	path := fileURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName {
		return fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}

	obj := c.client.Bucket(c.bucketName).Object(parts[1])
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

// GenerateSignedUploadURL returns a 15-minute PUT URL so large gallery
// uploads can go straight to GCS instead of through the API.
func (c *CloudStorageClient) GenerateSignedUploadURL(ctx context.Context, fileType, folder string, isPublic bool) (string, string, error) {
	name := objectName(folder, fileType, isPublic)

	url, err := storage.SignedURL(c.bucketName, name, &storage.SignedURLOptions{
		Method:      http.MethodPut,
		ContentType: fileType,
		Expires:     time.Now().Add(15 * time.Minute),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate signed URL: %v", err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, name)
	return url, publicURL, nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
