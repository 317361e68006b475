package services

import (
	"context"
	"time"

	"torget-app-io/api/pkg/models"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/pkg/errors"
)

const uploadTimeout = 40 * time.Second

// MediaService uploads files to Cloudinary and returns the public URL that
// file-type form fields carry.
type MediaService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewMediaService(cloudName, apiKey, apiSecret, folder string) (*MediaService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cloudinary")
	}

	return &MediaService{cld: cld, folder: folder}, nil
}

// FileUpload uploads a multipart file into the configured bucket folder.
func (ms *MediaService) FileUpload(ctx context.Context, file models.File, bucket string) (*models.MediaUploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	res, err := ms.cld.Upload.Upload(ctx, file.File, uploader.UploadParams{Folder: ms.folderFor(bucket)})
	if err != nil {
		return nil, errors.Wrap(err, "file upload failed")
	}

	return &models.MediaUploadResult{SecureUrl: res.SecureURL, PublicId: res.PublicID}, nil
}

// RemoteUpload ingests an already-hosted image by URL.
func (ms *MediaService) RemoteUpload(ctx context.Context, url models.Url, bucket string) (*models.MediaUploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	res, err := ms.cld.Upload.Upload(ctx, url.Url, uploader.UploadParams{Folder: ms.folderFor(bucket)})
	if err != nil {
		return nil, errors.Wrap(err, "remote upload failed")
	}

	return &models.MediaUploadResult{SecureUrl: res.SecureURL, PublicId: res.PublicID}, nil
}

func (ms *MediaService) folderFor(bucket string) string {
	if bucket == "" {
		return ms.folder
	}
	return ms.folder + "/" + bucket
}
