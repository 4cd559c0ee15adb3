package entity

// Tour is a bookable catalog entry. BasePrice is the whole-EUR price quoted
// for a party of 2; the pricing rule scales it per started pair.
type Tour struct {
	Base
	Slug           string `db:"slug"`
	Title          string `db:"title"`
	Description    string `db:"description"`
	BasePrice      int    `db:"base_price"`
	DurationDays   int    `db:"duration_days"`
	DurationNights int    `db:"duration_nights"`
	StartCity      string `db:"start_city"`
	EndCity        string `db:"end_city"`
	Published      bool   `db:"published"`
	SortOrder      int    `db:"sort_order"`
}
