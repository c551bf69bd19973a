package dto

// StopOverviewRequest selects the reporting window, inclusive on
// both ends. Dates are plain days, formatted 2006-01-02.
type StopOverviewRequest struct {
	Start string `json:"start" query:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" query:"end" validate:"required,datetime=2006-01-02"`
}
