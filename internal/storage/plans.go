package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

const (
	PlanIDLayout = "20060102_150405"

	planPrefix = "plan_"
	planSuffix = ".json"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrInvalidPlanID = errors.New("invalid plan id")

	planIDPattern = regexp.MustCompile(`^[0-9]{8}_[0-9]{6}(_[0-9a-f]{8})?$`)
)

// PlanStore keeps one indented JSON document per plan in a directory.
type PlanStore struct {
	dir string
	mu  sync.Mutex
}

func NewPlanStore(dir string) (*PlanStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plans dir: %w", err)
	}
	return &PlanStore{dir: dir}, nil
}

func (s *PlanStore) Dir() string {
	return s.dir
}

// Save assigns the plan an id derived from CreatedAt and writes it. When a
// plan from the same second already exists the id gets a short random suffix.
func (s *PlanStore) Save(plan *models.Plan) (string, error) {
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := plan.CreatedAt.Format(PlanIDLayout)
	f, err := os.OpenFile(s.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		id = id + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		f, err = os.OpenFile(s.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("create plan file: %w", err)
	}

	plan.ID = id
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write plan %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close plan %s: %w", id, err)
	}
	return id, nil
}

func (s *PlanStore) Load(id string) (*models.Plan, error) {
	if !planIDPattern.MatchString(id) {
		return nil, ErrInvalidPlanID
	}

	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", id, err)
	}

	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	plan.ID = id
	return &plan, nil
}

// List returns summaries of every readable plan. Files that fail to decode
// are logged and skipped.
func (s *PlanStore) List() ([]models.PlanSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	summaries := make([]models.PlanSummary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, planPrefix) || !strings.HasSuffix(name, planSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, planPrefix), planSuffix)
		plan, err := s.Load(id)
		if err != nil {
			log.Printf("Skipping plan file %s: %v", name, err)
			continue
		}
		summaries = append(summaries, plan.Summary())
	}
	return summaries, nil
}

func (s *PlanStore) Delete(id string) error {
	if !planIDPattern.MatchString(id) {
		return ErrInvalidPlanID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrPlanNotFound
	}
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	return nil
}

func (s *PlanStore) path(id string) string {
	return filepath.Join(s.dir, planPrefix+id+planSuffix)
}
