package domain

// CreatedAtLayout is the timestamp format used in the record store. It
// sorts lexicographically in chronological order, which Search relies on.
const CreatedAtLayout = "2006-01-02 15:04:05"

// PatientRecord is one issued-report entry in the patient index. Records
// are created once, optionally read, and eventually deleted; they are
// never updated in place.
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

// RecordSet is the full persisted state of the patient index, matching
// the on-disk JSON document layout.
type RecordSet struct {
	Patients []PatientRecord `json:"patients"`
}
