package utils

import (
	"campushire/config"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

type storageUploadResponse struct {
	URL string `json:"url"`
}

// UploadFile sends the uploaded file to the object storage service and returns
// its public URL. When no storage endpoint is configured it falls back to
// saving under the local upload directory.
func UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.StorageApiURL == "" {
		path, err := SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, folder))
		if err != nil {
			return "", err
		}
		return GetFileURL(path), nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	var result storageUploadResponse
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.StorageApiKey).
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{"folder": folder}).
		SetResult(&result).
		Post(config.AppConfig.StorageApiURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed with status %d", resp.StatusCode())
	}
	if result.URL == "" {
		return "", fmt.Errorf("storage upload returned no URL")
	}

	return result.URL, nil
}

// SaveUploadedFile writes the uploaded file to destDir with a timestamped name
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
