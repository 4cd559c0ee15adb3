package response

import (
	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	BasePrice      int    `json:"price"` // EUR for 2 guests
	DurationDays   int    `json:"duration_days"`
	DurationNights int    `json:"duration_nights"`
	StartCity      string `json:"start_city"`
	EndCity        string `json:"end_city"`
}

func TourToResponse(t *entity.Tour) TourResponse {
	return TourResponse{
		ID:             t.ID.String(),
		Slug:           t.Slug,
		Title:          t.Title,
		Description:    t.Description,
		BasePrice:      t.BasePrice,
		DurationDays:   t.DurationDays,
		DurationNights: t.DurationNights,
		StartCity:      t.StartCity,
		EndCity:        t.EndCity,
	}
}
