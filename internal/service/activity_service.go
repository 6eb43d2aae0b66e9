package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/middleware"
	"github.com/noah-isme/maum-go-api/internal/models"
	"github.com/noah-isme/maum-go-api/internal/observability"
	"github.com/noah-isme/maum-go-api/internal/realtime"
	"github.com/noah-isme/maum-go-api/internal/repository"
	"github.com/noah-isme/maum-go-api/internal/session"
)

var (
	// ErrNoActiveSession indicates no workflow session exists for the user.
	ErrNoActiveSession = errors.New("no active session")
	// ErrNotInDrawingPhase indicates the session has not reached the drawing phase.
	ErrNotInDrawingPhase = errors.New("session is not in the drawing phase")
	// ErrInvalidImageData indicates the submitted payload is not a decodable image.
	ErrInvalidImageData = errors.New("image data is not a valid encoded image")
)

// ObjectStore abstracts the blob store the recorder uploads drawings to.
type ObjectStore interface {
	UploadDataURL(ctx context.Context, path, dataURL string) (string, error)
	ResolveURL(ctx context.Context, ref string) (string, error)
}

// ActivityService assembles and persists the activity record at submission.
type ActivityService interface {
	Submit(ctx context.Context, identity middleware.Identity, req dto.SubmitActivityRequest) (dto.SubmitActivityResponse, error)
}

type activityService struct {
	sessions *session.Store
	storage  ObjectStore
	repo     repository.ActivityRepository
	hub      *realtime.Hub
	logger   zerolog.Logger
	now      func() time.Time
}

// NewActivityService constructs the activity recorder service.
func NewActivityService(sessions *session.Store, storage ObjectStore, repo repository.ActivityRepository, hub *realtime.Hub, logger zerolog.Logger) ActivityService {
	return &activityService{
		sessions: sessions,
		storage:  storage,
		repo:     repo,
		hub:      hub,
		logger:   logger.With().Str("component", "activity_service").Logger(),
		now:      time.Now,
	}
}

// Submit uploads the drawing and writes the activity record. The record is
// written only after the upload succeeds so it never references a missing
// image; on any failure the session rolls back to the drawing phase and the
// whole submission is retried by the user. There is no idempotency key, so a
// retry after a partially applied write can produce a duplicate record.
func (s *activityService) Submit(ctx context.Context, identity middleware.Identity, req dto.SubmitActivityRequest) (dto.SubmitActivityResponse, error) {
	sess, ok := s.sessions.Peek(identity.UserID)
	if !ok {
		return dto.SubmitActivityResponse{}, ErrNoActiveSession
	}

	if sess.Phase() != session.PhaseDrawing {
		return dto.SubmitActivityResponse{}, ErrNotInDrawingPhase
	}

	if err := validateImageData(req.ImageData); err != nil {
		return dto.SubmitActivityResponse{}, err
	}

	sess.BeginSubmission()

	now := s.now()
	chatDuration := sess.ChatDuration()
	drawingDuration := sess.DrawingDuration(now)
	activityDate := now.Format("2006-01-02")
	activityTime := now.Format("15:04")

	path := fmt.Sprintf("drawings/%s/%d.jpg", identity.UserID, now.UnixMilli())
	imageURL, err := s.storage.UploadDataURL(ctx, path, req.ImageData)
	if err != nil {
		sess.AbortSubmission()
		observability.Submissions().WithLabelValues("upload_error").Inc()
		s.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("drawing upload failed")
		return dto.SubmitActivityResponse{}, fmt.Errorf("upload drawing: %w", err)
	}

	history, err := models.EncodeTranscript(sess.Transcript())
	if err != nil {
		sess.AbortSubmission()
		observability.Submissions().WithLabelValues("encode_error").Inc()
		return dto.SubmitActivityResponse{}, fmt.Errorf("encode transcript: %w", err)
	}

	record := models.ActivityRecord{
		UserID:              identity.UserID,
		UserName:            identity.Name,
		UserEmail:           identity.Email,
		ChatDuration:        chatDuration,
		DrawingDuration:     drawingDuration,
		ConversationHistory: history,
		ActivityDate:        activityDate,
		ActivityTime:        activityTime,
		ImageURL:            imageURL,
		CreatedAt:           now,
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		sess.AbortSubmission()
		observability.Submissions().WithLabelValues("write_error").Inc()
		s.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("activity record write failed")
		return dto.SubmitActivityResponse{}, fmt.Errorf("write activity record: %w", err)
	}

	s.sessions.Remove(identity.UserID)
	observability.Submissions().WithLabelValues("success").Inc()
	s.logger.Info().Uint("activity_id", record.ID).Str("user_id", identity.UserID).Msg("activity submitted")

	if s.hub != nil {
		s.hub.Publish(dto.ActivityFeedEvent{
			ID:           record.ID,
			UserName:     record.UserName,
			ActivityDate: record.ActivityDate,
			ActivityTime: record.ActivityTime,
			CreatedAt:    record.CreatedAt,
		})
	}

	return dto.SubmitActivityResponse{
		ID:              record.ID,
		ImageURL:        record.ImageURL,
		ChatDuration:    record.ChatDuration,
		DrawingDuration: record.DrawingDuration,
		ActivityDate:    record.ActivityDate,
		ActivityTime:    record.ActivityTime,
	}, nil
}

// validateImageData checks that the payload is a data URL carrying a
// decodable raster image.
func validateImageData(dataURL string) error {
	const marker = ";base64,"
	idx := strings.Index(dataURL, marker)
	if !strings.HasPrefix(dataURL, "data:image/") || idx < 0 {
		return ErrInvalidImageData
	}

	payload, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return ErrInvalidImageData
	}

	if !strings.HasPrefix(mimetype.Detect(payload).String(), "image/") {
		return ErrInvalidImageData
	}

	return nil
}
