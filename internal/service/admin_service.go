package service

import (
	"context"
	"sort"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/models"
	"github.com/noah-isme/maum-go-api/internal/repository"
)

// AdminService exposes the reviewer's read/delete view over activity records.
type AdminService interface {
	List(ctx context.Context, dates []string) (dto.ActivityListResponse, error)
	Dates(ctx context.Context) (dto.ActivityDatesResponse, error)
	Detail(ctx context.Context, id uint) (dto.ActivityDetail, error)
	Delete(ctx context.Context, id uint) error
}

type adminService struct {
	repo      repository.ActivityRepository
	storage   ObjectStore
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAdminService constructs the admin review service. Transcript content
// originates from untrusted remote/bot text, so everything is sanitised
// before it reaches a display surface.
func NewAdminService(repo repository.ActivityRepository, storage ObjectStore, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		storage:   storage,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "admin_service").Logger(),
	}
}

// List returns record summaries. When dates is nil the full set is returned;
// otherwise the visible set is the union across the selected dates, newest
// time-of-day first within each date.
func (s *adminService) List(ctx context.Context, dates []string) (dto.ActivityListResponse, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	if dates != nil {
		records = FilterByDates(records, dates)
	}

	items := make([]dto.ActivitySummary, 0, len(records))
	for _, record := range records {
		items = append(items, dto.ActivitySummary{
			ID:           record.ID,
			UserName:     record.UserName,
			ActivityDate: record.ActivityDate,
			ActivityTime: record.ActivityTime,
			DateLabel:    FormatDateLabel(record.ActivityDate),
			CreatedAt:    record.CreatedAt,
		})
	}

	return dto.ActivityListResponse{Items: items, Total: len(items)}, nil
}

// Dates returns the distinct calendar dates present, newest first.
func (s *adminService) Dates(ctx context.Context) (dto.ActivityDatesResponse, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return dto.ActivityDatesResponse{}, err
	}

	return dto.ActivityDatesResponse{Dates: DistinctDates(records)}, nil
}

// Detail renders one record for inspection: sanitised transcript plus the
// image reference resolved to a fetchable URL. An unresolvable image
// degrades to an empty URL rather than failing the view.
func (s *adminService) Detail(ctx context.Context, id uint) (dto.ActivityDetail, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ActivityDetail{}, err
	}

	transcript, err := record.Transcript()
	if err != nil {
		return dto.ActivityDetail{}, err
	}

	entries := make([]dto.TranscriptEntry, 0, len(transcript))
	for _, entry := range transcript {
		entries = append(entries, dto.TranscriptEntry{
			Type:      entry.Type,
			Content:   s.sanitizer.Sanitize(entry.Content),
			Timestamp: entry.Timestamp,
		})
	}

	imageURL := ""
	if record.ImageURL != "" {
		resolved, err := s.storage.ResolveURL(ctx, record.ImageURL)
		if err != nil {
			s.logger.Warn().Err(err).Uint("activity_id", record.ID).Msg("image reference could not be resolved")
		} else {
			imageURL = resolved
		}
	}

	return dto.ActivityDetail{
		ID:                   record.ID,
		UserID:               record.UserID,
		UserName:             record.UserName,
		UserEmail:            record.UserEmail,
		ChatDuration:         record.ChatDuration,
		DrawingDuration:      record.DrawingDuration,
		ChatDurationLabel:    FormatDuration(record.ChatDuration),
		DrawingDurationLabel: FormatDuration(record.DrawingDuration),
		ActivityDate:         record.ActivityDate,
		ActivityTime:         record.ActivityTime,
		DateLabel:            FormatDateLabel(record.ActivityDate),
		Transcript:           entries,
		ImageURL:             imageURL,
		CreatedAt:            record.CreatedAt,
	}, nil
}

// Delete removes a record permanently after the reviewer's confirmation on
// the client side.
func (s *adminService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("activity_id", id).Msg("activity record deleted")
	return nil
}

// FilterByDates returns the union of records across the selected dates,
// sorted newest activityTime first within ties on date. An empty selection
// yields an empty set. The input order of selected dates does not matter.
func FilterByDates(records []models.ActivityRecord, selected []string) []models.ActivityRecord {
	if len(selected) == 0 {
		return []models.ActivityRecord{}
	}

	wanted := make(map[string]struct{}, len(selected))
	for _, date := range selected {
		wanted[date] = struct{}{}
	}

	filtered := make([]models.ActivityRecord, 0, len(records))
	for _, record := range records {
		if _, ok := wanted[record.ActivityDate]; ok {
			filtered = append(filtered, record)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].ActivityDate != filtered[j].ActivityDate {
			return filtered[i].ActivityDate > filtered[j].ActivityDate
		}
		return filtered[i].ActivityTime > filtered[j].ActivityTime
	})

	return filtered
}

// DistinctDates extracts the distinct calendar dates present in the records,
// sorted newest first.
func DistinctDates(records []models.ActivityRecord) []string {
	seen := make(map[string]struct{}, len(records))
	dates := make([]string, 0, len(records))
	for _, record := range records {
		if record.ActivityDate == "" {
			continue
		}
		if _, ok := seen[record.ActivityDate]; ok {
			continue
		}
		seen[record.ActivityDate] = struct{}{}
		dates = append(dates, record.ActivityDate)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
