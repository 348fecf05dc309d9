package db

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// MediaRepository uploads files to object storage and returns their public
// URLs. Buckets/folders: carimages, policereports, avatars.
type MediaRepository interface {
	UploadMediaToS3(file multipart.File, fileHeader *multipart.FileHeader, bucketName, folderName string) (string, error)
	UploadBytesToS3(content []byte, filename, bucketName, folderName string) (string, error)
}

type mediaRepo struct{}

func NewMediaRepo() MediaRepository {
	return &mediaRepo{}
}

func createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return s3.NewFromConfig(cfg), nil
}

func putObject(client *s3.Client, content []byte, bucketName, key string) (string, error) {
	_, err := client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, os.Getenv("AWS_REGION"), key)
	return fileURL, nil
}

func (m *mediaRepo) UploadMediaToS3(file multipart.File, fileHeader *multipart.FileHeader, bucketName, folderName string) (string, error) {
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %v", err)
	}

	sanitizedFilename := strings.ReplaceAll(fileHeader.Filename, " ", "_")
	return m.UploadBytesToS3(content, sanitizedFilename, bucketName, folderName)
}

func (m *mediaRepo) UploadBytesToS3(content []byte, filename, bucketName, folderName string) (string, error) {
	// Prefix with a uuid so two uploads of the same filename never clobber
	// each other.
	key := fmt.Sprintf("%s/%s_%s", folderName, uuid.New().String(), filename)

	client, err := createS3Client()
	if err != nil {
		return "", fmt.Errorf("failed to create S3 client: %v", err)
	}

	return putObject(client, content, bucketName, key)
}
