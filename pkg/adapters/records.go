package adapters

import (
	"github.com/premiummedi/labreport/pkg/models/api"
	"github.com/premiummedi/labreport/pkg/models/domain"
)

func MapDomainRecordToApi(record domain.PatientRecord) api.PatientRecord {
	return api.PatientRecord{
		ID:        record.ID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Age:       record.Age,
		TestType:  record.TestType,
		Filename:  record.Filename,
		TestDate:  record.TestDate,
		CreatedAt: record.CreatedAt,
	}
}

func MapDomainRecordsToApi(records []domain.PatientRecord) []api.PatientRecord {
	mapped := make([]api.PatientRecord, 0, len(records))
	for _, record := range records {
		mapped = append(mapped, MapDomainRecordToApi(record))
	}
	return mapped
}
