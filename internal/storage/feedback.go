package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

const TimestampLayout = "2006-01-02 15:04:05"

var feedbackHeader = []string{"Timestamp", "Destination", "Duration", "Rating", "Comments"}

// FeedbackStore appends ratings to one CSV file per calendar month.
type FeedbackStore struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewFeedbackStore(dir string) (*FeedbackStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create feedback dir: %w", err)
	}
	return &FeedbackStore{dir: dir, now: time.Now}, nil
}

// Append validates fb and writes one row, adding the header when the month's
// file is new. It returns the row timestamp.
func (s *FeedbackStore) Append(fb models.FeedbackRequest) (string, error) {
	if err := fb.Validate(); err != nil {
		return "", err
	}

	now := s.now()
	ts := now.Format(TimestampLayout)
	path := s.PathFor(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(feedbackHeader); err != nil {
			return "", fmt.Errorf("write feedback header: %w", err)
		}
	}
	row := []string{ts, fb.Destination, strconv.Itoa(fb.Duration), strconv.Itoa(fb.Rating), fb.Comments}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("write feedback: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush feedback: %w", err)
	}
	return ts, nil
}

func (s *FeedbackStore) PathFor(t time.Time) string {
	return filepath.Join(s.dir, "feedback_"+t.Format("200601")+".csv")
}
