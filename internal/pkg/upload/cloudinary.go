package upload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores generated receipt images in Cloudinary and
// returns their public HTTPS URL.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, publicID string, data []byte) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: publicID,
		Folder:   u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", publicID, err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", publicID, resp.Error.Message)
	}
	return resp.SecureURL, nil
}
