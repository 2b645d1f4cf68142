package engine

import "taxidash/internal/domain"

// Compute derives every dashboard view for one request.
//
// Metrics and charts describe the filtered collection. The table is the
// filtered collection narrowed by the search term, sorted, then paginated.
func Compute(trips []domain.TripRecord, req domain.ViewRequest) domain.DashboardView {
	filtered := Filter(trips, req.Filter)

	return domain.DashboardView{
		Request: req,
		Metrics: Aggregate(filtered),
		Charts:  BuildCharts(filtered),
		Table:   Table(filtered, req.Search, req.SortBy, req.Page),
	}
}

// Table runs the search, sort and pagination stages over already filtered trips.
func Table(filtered []domain.TripRecord, term string, field domain.SortField, page domain.PageRequest) domain.Page {
	rows := Sort(Search(filtered, term), field)
	return Paginate(rows, page.PageSize, page.PageNumber)
}
