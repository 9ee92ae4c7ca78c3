package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Reader lists persisted audit entries, newest first.
type Reader interface {
	List(ctx context.Context, action string, limit int) ([]models.AuditLog, error)
}

func toRow(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}

// ------------------------------------------------------------------
// gorm
// ------------------------------------------------------------------

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	row := toRow(ev)
	return l.db.Create(&row).Error
}

func (l *Logger) List(ctx context.Context, action string, limit int) ([]models.AuditLog, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}

	var rows []models.AuditLog
	if err := q.Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ------------------------------------------------------------------
// in-memory
// ------------------------------------------------------------------

const memoryCapacity = 1000

// MemoryLog keeps the most recent events when no database is configured.
type MemoryLog struct {
	mu     sync.Mutex
	nextID uint
	rows   []models.AuditLog
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (m *MemoryLog) Log(ev Event) error {
	row := toRow(ev)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	row.ID = m.nextID
	row.CreatedAt = time.Now()
	m.rows = append(m.rows, row)
	if len(m.rows) > memoryCapacity {
		m.rows = m.rows[len(m.rows)-memoryCapacity:]
	}
	return nil
}

func (m *MemoryLog) List(_ context.Context, action string, limit int) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.AuditLog{}
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if action == "" || m.rows[i].Action == action {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
	_ Sink   = (*MemoryLog)(nil)
	_ Reader = (*MemoryLog)(nil)
)
