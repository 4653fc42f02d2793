// Package scan holds the per-session state behind a résumé scan: the
// uploaded document, the chosen skill source and the last result.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/skillchecker/internal/match"
	"github.com/muhammadolammi/skillchecker/internal/skills"
)

var (
	// ErrNoFileSelected is returned when Scan runs before a document is uploaded.
	ErrNoFileSelected = errors.New("no file selected")
	// ErrSuperseded is returned when a newer scan or a Clear won the race.
	ErrSuperseded = errors.New("scan superseded")
)

// Extractor turns document bytes into text.
type Extractor interface {
	Extract(ctx context.Context, contentType string, data []byte) (string, error)
}

// Report is the record of one successful scan.
type Report struct {
	ID          uuid.UUID     `json:"id"`
	FileName    string        `json:"file_name"`
	ContentType string        `json:"content_type"`
	Source      skills.Source `json:"source"`
	Role        string        `json:"role,omitempty"`
	Skills      []string      `json:"skills"`
	Result      match.Result  `json:"result"`
	ScannedAt   time.Time     `json:"scanned_at"`
}

// clone copies the report so callers cannot reach the session's slices.
func (r *Report) clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.Skills = append([]string(nil), r.Skills...)
	out.Result.Matched = append([]string{}, r.Result.Matched...)
	return &out
}

type document struct {
	name        string
	contentType string
	data        []byte
}

// Session is the state one user works against. It is safe for concurrent
// use, though only one scan is normally in flight.
type Session struct {
	extractor Extractor
	catalog   *skills.Catalog
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	doc     *document
	role    string
	custom  string
	last    *Report
	seq     uint64
	applied uint64
}

// NewSession creates an empty session. A nil catalog means only custom
// skills can be scanned.
func NewSession(extractor Extractor, catalog *skills.Catalog, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		extractor: extractor,
		catalog:   catalog,
		logger:    logger,
		now:       time.Now,
	}
}

// Upload replaces the current document. Empty data clears it.
func (s *Session) Upload(name, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		s.doc = nil
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.doc = &document{name: name, contentType: contentType, data: buf}
	s.logger.Info("document uploaded", zap.String("file", name), zap.Int("size_bytes", len(buf)))
}

// SelectRole sets the job role used when no custom skills are entered.
func (s *Session) SelectRole(role string) {
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()
}

// SetCustomSkills sets the comma-separated skill list. Non-blank text takes
// precedence over the selected role.
func (s *Session) SetCustomSkills(text string) {
	s.mu.Lock()
	s.custom = text
	s.mu.Unlock()
}

// Ready reports whether a document is uploaded and a scan may start.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc != nil
}

// LastReport returns a copy of the most recent successful scan, or nil.
func (s *Session) LastReport() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.clone()
}

// Clear resets the session and discards the result of any scan in flight.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = nil
	s.role = ""
	s.custom = ""
	s.last = nil
	s.seq++
	s.applied = s.seq
}

// Scan extracts the uploaded document and matches it against the selected
// skills. On failure the previous report is left in place. A scan whose
// result arrives after a newer one has been applied returns ErrSuperseded
// together with its report, which is not stored.
func (s *Session) Scan(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	doc := s.doc
	if doc == nil {
		s.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	selection, err := skills.Resolve(s.catalog, s.role, s.custom)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	logger := s.logger.With(zap.String("file", doc.name), zap.Uint64("scan", seq))

	text, err := s.extractor.Extract(ctx, doc.contentType, doc.data)
	if err != nil {
		logger.Error("scan failed", zap.Error(err))
		return nil, fmt.Errorf("failed to extract text from %s: %w", doc.name, err)
	}

	result, err := match.MatchKeywords(text, selection.Skills)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.New(),
		FileName:    doc.name,
		ContentType: doc.contentType,
		Source:      selection.Source,
		Role:        selection.Role,
		Skills:      selection.Skills,
		Result:      result,
		ScannedAt:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		logger.Info("discarding superseded scan result")
		return report, ErrSuperseded
	}
	s.applied = seq
	s.last = report.clone()

	logger.Info("scan completed",
		zap.String("report_id", report.ID.String()),
		zap.String("source", string(selection.Source)),
		zap.Int("percentage", result.Percentage),
		zap.Strings("matched", result.Matched))
	return report, nil
}
