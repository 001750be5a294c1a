package domain

import "net/url"

// ReportRequest is the parsed form submission for one report: patient
// metadata plus the raw result values keyed by parameter field. Every
// field is optional by contract; a missing value reads as "".
type ReportRequest struct {
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Age        string            `json:"age"`
	TestDate   string            `json:"test_date"`
	DoctorName string            `json:"doctor_name"`
	Values     map[string]string `json:"values"`
}

// Value returns the submitted result for a field key, or "" when the
// field was not submitted. This is the single place where "missing means
// empty" lives.
func (r ReportRequest) Value(key string) string {
	return r.Values[key]
}

// ReportRequestFromForm flattens a posted form into a ReportRequest.
// Repeated keys keep the first value, matching ordinary form submission.
func ReportRequestFromForm(form url.Values) ReportRequest {
	values := make(map[string]string, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}
	req := ReportRequest{
		FirstName:  values["first_name"],
		LastName:   values["last_name"],
		Age:        values["age"],
		TestDate:   values["test_date"],
		DoctorName: values["doctor_name"],
		Values:     values,
	}
	delete(values, "first_name")
	delete(values, "last_name")
	delete(values, "age")
	delete(values, "test_date")
	delete(values, "doctor_name")
	return req
}
