package dto

// Page is one already-extracted document page: the page's plain text plus
// zero or more tables, as produced by the extraction backend. Pages are
// immutable inputs; the engine never touches raw document bytes.
type Page struct {
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// Table is an ordered sequence of rows belonging to exactly one page.
type Table struct {
	Rows []Row `json:"rows"`
}

// Row is an ordered sequence of cells. An empty string means the cell was
// absent in the source layout. Row order within a table is significant.
type Row struct {
	Cells []string `json:"cells"`
}

// CandidateOrigin records whether a candidate came from a table row or from
// a plain-text line on a page whose table extraction yielded nothing.
type CandidateOrigin string

const (
	OriginText  CandidateOrigin = "text"
	OriginTable CandidateOrigin = "table"
)

// Candidate is one provisional value extracted from a row, with its
// provenance and the priority used to resolve conflicts between a
// consolidated-statement total and a per-fund detail figure.
type Candidate struct {
	Value        float64         `json:"value"`
	Page         int             `json:"page"`
	Label        string          `json:"label"`
	Origin       CandidateOrigin `json:"origin"`
	Consolidated bool            `json:"is_consolidated"`
	Detail       bool            `json:"is_detail"`
	Priority     float64         `json:"priority"`
}

// ExtractionResult is the outcome of one document extraction. Optional
// figures are pointers so "not found" stays distinguishable from zero.
type ExtractionResult struct {
	EntityName          string      `json:"entity_name,omitempty"`
	OperatingRevenue    *float64    `json:"operating_revenue,omitempty"`
	NonOperatingRevenue *float64    `json:"non_operating_revenue,omitempty"`
	NonOperatingItems   []Candidate `json:"non_operating_items"`
	TotalRevenue        *float64    `json:"total_revenue,omitempty"`
	SourcePage          *int        `json:"page_number,omitempty"`
	Consolidated        bool        `json:"is_consolidated"`
	AllMatches          []Candidate `json:"all_matches"`
}

// Report statuses for batch processing.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DocumentReport is one per-file row of a batch run, as written to the CSV.
type DocumentReport struct {
	Filename       string   `json:"filename"`
	EntityName     string   `json:"entity_name"`
	TotalRevenue   *float64 `json:"total_revenue,omitempty"`
	TotalFormatted string   `json:"total_revenue_formatted"`
	SourcePage     *int     `json:"page_number,omitempty"`
	Consolidated   bool     `json:"is_consolidated"`
	Status         string   `json:"status"`
	Error          string   `json:"error,omitempty"`
}

// BatchStatus tracks the progress of one ZIP extraction session.
type BatchStatus struct {
	Total          int              `json:"total"`
	Current        int              `json:"current"`
	CurrentFile    string           `json:"current_file"`
	InProgress     bool             `json:"in_progress"`
	Results        []DocumentReport `json:"results"`
	Errors         []DocumentReport `json:"errors"`
	CSVFilename    string           `json:"csv_filename,omitempty"`
	CSVDownloadURL string           `json:"csv_download_url,omitempty"`
}
