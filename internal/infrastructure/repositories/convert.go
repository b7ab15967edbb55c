package repositories

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Entities carry null.* values while models use pointers so GORM writes
// proper NULLs. These helpers cover the translation in both directions.

func strPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullStr(p *string) null.String {
	if p == nil {
		return null.String{}
	}
	return null.StringFrom(*p)
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(p *time.Time) null.Time {
	if p == nil {
		return null.Time{}
	}
	return null.TimeFrom(*p)
}
