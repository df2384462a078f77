package supabase

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

const (
	ContentTypePDF  = "application/pdf"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("supabase url is required for storage")
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// DocumentPath builds the object path for a generated job document:
// jobs/{job_id}/{kind}_{timestamp}.pdf
func DocumentPath(jobID uuid.UUID, kind string, generatedAt time.Time) string {
	return fmt.Sprintf("jobs/%s/%s_%s.pdf", jobID, kind, generatedAt.UTC().Format("20060102T150405Z"))
}

// RetirementPhotoPath builds the object path for an asset retirement photo.
// ext includes the leading dot.
func RetirementPhotoPath(assetID uuid.UUID, at time.Time, ext string) string {
	return fmt.Sprintf("assets/%s/retired_%s%s", assetID, at.UTC().Format("20060102T150405Z"), ext)
}

// CertificationPath builds the object path for an operator certification scan.
func CertificationPath(operatorID, certID uuid.UUID, filename string) string {
	return fmt.Sprintf("operators/%s/certifications/%s_%s", operatorID, certID, filename)
}

// Upload stores data at path, replacing any previous object there.
func (s *StorageClient) Upload(path, contentType string, data []byte) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

func (s *StorageClient) Delete(path string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
