// Package services – ResumeService
//
// This file implements the ResumeService, which brokers resume storage
// through an S3-compatible object store. The backend never holds resume
// bytes: upload and download both hand the client a presigned URL, and only
// the object key is persisted on the hacker profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/repo"
)

// ResumePresigner produces presigned upload and download URLs for object
// keys. Implementations wrap an S3 presign client; tests substitute a stub.
type ResumePresigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// S3Config carries the settings needed to reach the object store. Endpoint
// may point at MinIO or any S3-compatible service.
type S3Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Expiry    time.Duration
}

// s3Presigner implements ResumePresigner over the AWS SDK presign client.
type s3Presigner struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
}

// NewS3Presigner builds a ResumePresigner from static credentials and an
// optional custom endpoint.
func NewS3Presigner(ctx context.Context, cfg S3Config) (ResumePresigner, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &s3Presigner{client: s3.NewPresignClient(client), bucket: cfg.Bucket, expiry: expiry}, nil
}

func (p *s3Presigner) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &p.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (p *s3Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &p.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// resumeStorageKey returns a fresh object key partitioned by date.
func resumeStorageKey(hackerID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("resumes/%d/%02d/%s/%s", d.Year(), d.Month(), hackerID, uuid.NewString())
}

// ResumeService implements the resume upload/download use-cases.
type ResumeService struct {
	DB        *gorm.DB
	Presigner ResumePresigner
}

// RequestUpload allocates an object key for the hacker's resume, records it
// on the profile, and returns the key together with a presigned PUT URL the
// client uploads to directly. Returns ErrHackerNotFound when the profile
// does not exist.
func (s *ResumeService) RequestUpload(ctx context.Context, hackerID string) (key, url string, err error) {
	if s.Presigner == nil {
		return "", "", ErrStorageUnavailable
	}
	if _, err = repo.GetHacker(ctx, s.DB, hackerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", "", ErrHackerNotFound
		}
		return "", "", err
	}

	key = resumeStorageKey(hackerID)
	url, err = s.Presigner.PresignPut(ctx, key)
	if err != nil {
		return "", "", err
	}
	if err = repo.UpdateHackerFields(ctx, s.DB, hackerID, map[string]any{"resume_key": key}); err != nil {
		return "", "", err
	}
	return key, url, nil
}

// RequestDownload returns a presigned GET URL for the hacker's stored resume.
// Returns ErrHackerNotFound for a missing profile and ErrResumeNotFound when
// no resume has been uploaded.
func (s *ResumeService) RequestDownload(ctx context.Context, hackerID string) (string, error) {
	if s.Presigner == nil {
		return "", ErrStorageUnavailable
	}
	h, err := repo.GetHacker(ctx, s.DB, hackerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrHackerNotFound
		}
		return "", err
	}
	if h.ResumeKey == "" {
		return "", ErrResumeNotFound
	}
	return s.Presigner.PresignGet(ctx, h.ResumeKey)
}
