// Package patientdb keeps the flat patient index: one JSON document that
// lists every issued report, plus the directory of generated files. The
// store owns both exclusively; a single in-process mutex serializes all
// operations. It is not safe for multiple processes.
package patientdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

type Settings struct {
	// DBPath is the JSON index file; a missing file is the first-run
	// state, not an error.
	DBPath string
	// DocsDir holds the generated report files; created if absent.
	DocsDir string
	Logger  zerolog.Logger
	// Now is the clock used for created_at stamps; defaults to time.Now.
	Now func() time.Time
}

type Store struct {
	mu      sync.Mutex
	dbPath  string
	docsDir string
	logger  zerolog.Logger
	now     func() time.Time
}

func NewStore(settings Settings) (*Store, error) {
	if settings.DBPath == "" || settings.DocsDir == "" {
		return nil, errors.New("patientdb: DBPath and DocsDir are required")
	}
	if err := os.MkdirAll(settings.DocsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(settings.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	now := settings.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		dbPath:  settings.DBPath,
		docsDir: settings.DocsDir,
		logger:  settings.Logger,
		now:     now,
	}, nil
}

// Load returns the full record set. A corrupt index file is logged and
// treated as empty rather than failing every subsequent operation.
func (s *Store) Load() (domain.RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (domain.RecordSet, error) {
	data, err := os.ReadFile(s.dbPath)
	if errors.Is(err, os.ErrNotExist) {
		return domain.RecordSet{}, nil
	}
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("failed to read patient index: %w", err)
	}

	var set domain.RecordSet
	if err := json.Unmarshal(data, &set); err != nil {
		s.logger.Warn().Err(err).Str("path", s.dbPath).
			Msg("patient index is corrupt, resetting to empty")
		return domain.RecordSet{}, nil
	}
	return set, nil
}

func (s *Store) save(set domain.RecordSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patient index: %w", err)
	}
	if err := os.WriteFile(s.dbPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write patient index: %w", err)
	}
	return nil
}

// Append adds a record for a freshly generated report and rewrites the
// index. Ids are positional (current count + 1), matching the index
// files the legacy tool produced; after a deletion the next append can
// collide with an existing id.
func (s *Store) Append(
	firstName, lastName, age string,
	testType domain.TestType,
	filename, testDate string,
) (domain.PatientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load()
	if err != nil {
		return domain.PatientRecord{}, err
	}

	record := domain.PatientRecord{
		ID:        len(set.Patients) + 1,
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		TestType:  string(testType),
		Filename:  filename,
		TestDate:  testDate,
		CreatedAt: s.now().Format(domain.CreatedAtLayout),
	}
	set.Patients = append(set.Patients, record)

	if err := s.save(set); err != nil {
		return domain.PatientRecord{}, err
	}
	return record, nil
}

// Search returns records whose first or last name contains the query,
// case-insensitively; the empty query matches everything. Results are
// ordered newest first.
func (s *Store) Search(query string) ([]domain.PatientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	matches := make([]domain.PatientRecord, 0, len(set.Patients))
	for _, record := range set.Patients {
		if strings.Contains(strings.ToLower(record.FirstName), query) ||
			strings.Contains(strings.ToLower(record.LastName), query) {
			matches = append(matches, record)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].CreatedAt != matches[j].CreatedAt {
			return matches[i].CreatedAt > matches[j].CreatedAt
		}
		return matches[i].ID > matches[j].ID
	})
	return matches, nil
}

// Delete removes the record with the given id and its generated file.
// A missing file is tolerated; a missing record returns false.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load()
	if err != nil {
		return false, err
	}

	for i, record := range set.Patients {
		if record.ID != id {
			continue
		}
		path := filepath.Join(s.docsDir, record.Filename)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("failed to remove document %s: %w", record.Filename, err)
		}
		set.Patients = append(set.Patients[:i], set.Patients[i+1:]...)
		if err := s.save(set); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// SaveDocument writes a generated report file into the documents dir and
// returns its full path.
func (s *Store) SaveDocument(filename string, data []byte) (string, error) {
	path, err := s.DocumentPath(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", filename, err)
	}
	return path, nil
}

// DocumentPath resolves a generated file name inside the documents dir.
// Names that would escape the directory are rejected.
func (s *Store) DocumentPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid document name %q", filename)
	}
	return filepath.Join(s.docsDir, filename), nil
}
