package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage pushes a multipart file to the Cloudinary image upload
// endpoint and returns its served URL. Uploads are signed: the signature is
// the SHA-1 of the sorted param string plus the API secret, as the vendor
// requires.
func UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" {
		return "", fmt.Errorf("cloudinary is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	// Params participating in the signature, in alphabetical order.
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", folder, timestamp, cfg.CloudinaryAPISecret)
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	uploadURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudinaryCloudName)

	var result cloudinaryUploadResponse
	resp, err := resty.New().
		SetTimeout(30 * time.Second).
		R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"api_key":   cfg.CloudinaryAPIKey,
			"timestamp": timestamp,
			"folder":    folder,
			"signature": signature,
		}).
		Post(uploadURL)
	if err != nil {
		return "", err
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("unexpected upload response: %v", err)
	}
	if resp.IsError() || result.SecureURL == "" {
		if result.Error.Message != "" {
			return "", fmt.Errorf("upload failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode())
	}

	return result.SecureURL, nil
}
