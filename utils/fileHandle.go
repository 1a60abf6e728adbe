package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
)

// EncodeUploadedProof reads an uploaded payment proof and returns it as a
// base64 blob plus its MIME type. Proofs are stored inline on the enrollment
// row; there is no separate file bucket.
func EncodeUploadedProof(file *multipart.FileHeader, maxBytes int) (string, string, error) {
	if file.Size > int64(maxBytes) {
		return "", "", fmt.Errorf("proof exceeds %d bytes", maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, int64(maxBytes)+1))
	if err != nil {
		return "", "", err
	}
	if len(data) > maxBytes {
		return "", "", fmt.Errorf("proof exceeds %d bytes", maxBytes)
	}

	mime := file.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	return base64.StdEncoding.EncodeToString(data), mime, nil
}
