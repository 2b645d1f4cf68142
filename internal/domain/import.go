package domain

// ImportResult summarizes one ingestion batch.
type ImportResult struct {
	BatchID  string   `json:"batch_id"`
	Received int      `json:"received"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
