package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores drawings in Cloudinary and resolves stored references to
// fetchable URLs.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	tracer trace.Tracer
	logger zerolog.Logger
}

// New constructs a Cloudinary storage service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		tracer: otel.Tracer("github.com/noah-isme/maum-go-api/pkg/storage"),
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// UploadDataURL uploads a data-URL encoded image under the given path and
// returns the secure delivery URL. Cloudinary accepts data URIs directly as
// the upload source.
func (s *Service) UploadDataURL(parent context.Context, path, dataURL string) (string, error) {
	ctx, span := s.tracer.Start(parent, "storage.upload", trace.WithAttributes(
		attribute.String("path", path),
	))
	defer span.End()

	if !strings.HasPrefix(dataURL, "data:") {
		err := fmt.Errorf("upload source must be a data url")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicIDFromPath(path),
		ResourceType: "image",
	}

	result, err := s.client.Upload.Upload(ctx, dataURL, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to upload drawing: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("drawing uploaded to cloudinary")

	return result.SecureURL, nil
}

// ResolveURL turns a stored image reference into a fetchable URL. Plain
// http(s) URLs pass through unchanged; legacy scheme://bucket/path
// references are translated to a path-based lookup against the store.
func (s *Service) ResolveURL(_ context.Context, ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", fmt.Errorf("empty image reference")
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed, nil
	}

	path := trimmed
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		// Legacy bucket-style reference: drop the scheme and bucket segment.
		remainder := trimmed[idx+3:]
		if slash := strings.Index(remainder, "/"); slash >= 0 {
			path = remainder[slash+1:]
		} else {
			return "", fmt.Errorf("invalid legacy image reference: %s", ref)
		}
	}

	asset, err := s.client.Image(publicIDFromPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve image reference: %w", err)
	}

	url, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("failed to build image url: %w", err)
	}

	return url, nil
}

// publicIDFromPath strips the file extension; Cloudinary public IDs carry no
// extension.
func publicIDFromPath(path string) string {
	cleaned := strings.Trim(path, "/")
	return strings.TrimSuffix(cleaned, filepath.Ext(cleaned))
}
