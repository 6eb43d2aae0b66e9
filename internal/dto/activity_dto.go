package dto

import "time"

// SubmitActivityRequest carries the exported drawing for submission. The
// image is a data-URL encoded raster as produced by the drawing surface.
type SubmitActivityRequest struct {
	ImageData string `json:"image_data" validate:"required,startswith=data:image/"`
}

// SubmitActivityResponse acknowledges a persisted activity record.
type SubmitActivityResponse struct {
	ID              uint   `json:"id"`
	ImageURL        string `json:"image_url"`
	ChatDuration    int    `json:"chat_duration"`
	DrawingDuration int    `json:"drawing_duration"`
	ActivityDate    string `json:"activity_date"`
	ActivityTime    string `json:"activity_time"`
}

// ActivitySummary is one row of the reviewer's record list.
type ActivitySummary struct {
	ID           uint      `json:"id"`
	UserName     string    `json:"user_name"`
	ActivityDate string    `json:"activity_date"`
	ActivityTime string    `json:"activity_time"`
	DateLabel    string    `json:"date_label"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityDetail is the full reviewer view of one record.
type ActivityDetail struct {
	ID                   uint              `json:"id"`
	UserID               string            `json:"user_id"`
	UserName             string            `json:"user_name"`
	UserEmail            string            `json:"user_email"`
	ChatDuration         int               `json:"chat_duration"`
	DrawingDuration      int               `json:"drawing_duration"`
	ChatDurationLabel    string            `json:"chat_duration_label"`
	DrawingDurationLabel string            `json:"drawing_duration_label"`
	ActivityDate         string            `json:"activity_date"`
	ActivityTime         string            `json:"activity_time"`
	DateLabel            string            `json:"date_label"`
	Transcript           []TranscriptEntry `json:"transcript"`
	ImageURL             string            `json:"image_url"`
	CreatedAt            time.Time         `json:"created_at"`
}

// ActivityListResponse groups the filtered record list.
type ActivityListResponse struct {
	Items []ActivitySummary `json:"items"`
	Total int               `json:"total"`
}

// ActivityDatesResponse lists the distinct calendar dates with records.
type ActivityDatesResponse struct {
	Dates []string `json:"dates"`
}

// ActivityFeedEvent is pushed to connected reviewer sessions when a new
// activity record is submitted.
type ActivityFeedEvent struct {
	ID           uint      `json:"id"`
	UserName     string    `json:"user_name"`
	ActivityDate string    `json:"activity_date"`
	ActivityTime string    `json:"activity_time"`
	CreatedAt    time.Time `json:"created_at"`
}
