package api

// PatientRecord is the wire form of one patient index entry.
type PatientRecord struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       string `json:"age"`
	TestType  string `json:"test_type"`
	Filename  string `json:"filename"`
	TestDate  string `json:"test_date"`
	CreatedAt string `json:"created_at"`
}

// SearchResponse is returned by GET /search.
type SearchResponse struct {
	Results []PatientRecord `json:"results"`
}

// DeleteResponse is returned by POST /delete/{id}.
type DeleteResponse struct {
	Success bool `json:"success"`
}
