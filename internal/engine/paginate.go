package engine

import "taxidash/internal/domain"

// Paginate returns one page of trips.
//
// Pages outside [1, TotalPages] yield no items rather than an error;
// ClampedPage then holds the nearest page that does exist.
func Paginate(trips []domain.TripRecord, pageSize, pageNumber int) domain.Page {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	count := len(trips)
	totalPages := count / pageSize
	if count%pageSize != 0 {
		totalPages++
	}

	page := domain.Page{
		Items:       []domain.TripRecord{},
		TotalItems:  count,
		TotalPages:  totalPages,
		ClampedPage: clamp(pageNumber, 1, max(totalPages, 1)),
	}
	page.HasPrev = page.ClampedPage > 1
	page.HasNext = page.ClampedPage < totalPages

	if pageNumber < 1 || pageNumber > totalPages {
		return page
	}

	start := (pageNumber - 1) * pageSize
	end := start + min(pageSize, count-start)

	items := make([]domain.TripRecord, end-start)
	copy(items, trips[start:end])
	page.Items = items

	return page
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
