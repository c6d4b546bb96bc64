package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/utils"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

// uploadBomImageHandler stores a product image for a BOM record in GCS and
// writes a 200px-wide JPEG thumbnail next to it. The returned URLs go into
// the BOM record's image_url field by the caller.
func uploadBomImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := config.GetLogger()

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
		if err != nil {
			respondError(c, err)
			return
		}
		if int64(len(data)) > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		ext := strings.ToLower(path.Ext(fileHeader.Filename))
		if ext == "" {
			ext = ".jpg"
		}
		objectKey := fmt.Sprintf("bom-images/%s%s", utils.GenerateUniqueFilename(), ext)

		imageURL, err := utils.UploadImageToGCS(ctx, objectKey, data)
		if err != nil {
			config.LogError(logger, "Uploads", "UploadBomImage", "image upload failed", objectKey, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		thumbnailURL, err := createThumbnail(c, objectKey, data)
		if err != nil {
			// the image itself is stored; a failed thumbnail is not fatal
			config.LogError(logger, "Uploads", "UploadBomImage", "thumbnail generation failed", objectKey, err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"image_url":     imageURL,
			"thumbnail_url": thumbnailURL,
			"object_key":    objectKey,
		})
	}
}

func createThumbnail(c *gin.Context, objectKey string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	thumbnailKey := thumbnailObjectKey(objectKey)
	if err := utils.UploadBytesToGCS(c.Request.Context(), thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", os.Getenv("GCS_BUCKET"), thumbnailKey), nil
}

func thumbnailObjectKey(objectKey string) string {
	ext := path.Ext(objectKey)
	base := strings.TrimSuffix(objectKey, ext)
	return base + "_thumb.jpg"
}
