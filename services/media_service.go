package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
)

// Storage buckets, one per upload kind.
const (
	BucketCarImages     = "carimages"
	BucketPoliceReports = "policereports"
	BucketAvatars       = "avatars"
)

const (
	maxImageSize    = 10 << 20
	maxDocumentSize = 20 << 20
)

// MediaService validates uploads and pushes them to object storage.
type MediaService interface {
	// UploadCarImage stores the original photo and a thumbnail, returning
	// both public URLs.
	UploadCarImage(file multipart.File, fileHeader *multipart.FileHeader) (string, string, error)
	UploadPoliceReport(file multipart.File, fileHeader *multipart.FileHeader) (string, error)
	UploadAvatar(file multipart.File, fileHeader *multipart.FileHeader) (string, error)
}

type mediaService struct {
	Config    *config.Config
	mediaRepo db.MediaRepository
}

func NewMediaService(mediaRepo db.MediaRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:    conf,
		mediaRepo: mediaRepo,
	}
}

func isImageFilename(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (m *mediaService) UploadCarImage(file multipart.File, fileHeader *multipart.FileHeader) (string, string, error) {
	if !isImageFilename(fileHeader.Filename) {
		return "", "", fmt.Errorf("unsupported image type: %s", fileHeader.Filename)
	}
	if fileHeader.Size > maxImageSize {
		return "", "", fmt.Errorf("image too large: %d bytes", fileHeader.Size)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file content: %v", err)
	}
	file.Close()

	sanitized := strings.ReplaceAll(fileHeader.Filename, " ", "_")
	imageURL, err := m.mediaRepo.UploadBytesToS3(content, sanitized, BucketCarImages, "uploads")
	if err != nil {
		return "", "", err
	}

	// Thumbnail failures are not fatal; the listing falls back to the full
	// image.
	thumbnailURL := ""
	thumbnail, err := makeThumbnail(content)
	if err != nil {
		log.Printf("error generating thumbnail for %s: %v", sanitized, err)
	} else {
		thumbnailURL, err = m.mediaRepo.UploadBytesToS3(thumbnail, "thumb_"+sanitized, BucketCarImages, "thumbnails")
		if err != nil {
			log.Printf("error uploading thumbnail for %s: %v", sanitized, err)
			thumbnailURL = ""
		}
	}

	return imageURL, thumbnailURL, nil
}

func (m *mediaService) UploadPoliceReport(file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && !isImageFilename(fileHeader.Filename) {
		return "", fmt.Errorf("unsupported document type: %s", fileHeader.Filename)
	}
	if fileHeader.Size > maxDocumentSize {
		return "", fmt.Errorf("document too large: %d bytes", fileHeader.Size)
	}

	return m.mediaRepo.UploadMediaToS3(file, fileHeader, BucketPoliceReports, "uploads")
}

func (m *mediaService) UploadAvatar(file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	if !isImageFilename(fileHeader.Filename) {
		return "", fmt.Errorf("unsupported image type: %s", fileHeader.Filename)
	}
	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("image too large: %d bytes", fileHeader.Size)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %v", err)
	}
	file.Close()

	// Avatars are displayed small everywhere; store a square crop only.
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	square := imaging.Fill(img, 256, 256, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, square, nil); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %v", err)
	}

	sanitized := strings.ReplaceAll(fileHeader.Filename, " ", "_")
	return m.mediaRepo.UploadBytesToS3(buf.Bytes(), sanitized, BucketAvatars, "uploads")
}

func makeThumbnail(content []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	thumbnail := resize.Resize(200, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, nil); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}
	return buf.Bytes(), nil
}
