package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const FechaLayout = "2006-01-02"

// Fecha is a date-only value exchanged as "YYYY-MM-DD" over JSON and stored
// in a DATE column.
type Fecha struct {
	time.Time
}

func NuevaFecha(t time.Time) Fecha {
	return Fecha{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(FechaLayout, s)
	if err != nil {
		return Fecha{}, err
	}
	return Fecha{t}, nil
}

func (f Fecha) String() string {
	return f.Format(FechaLayout)
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format(FechaLayout) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(FechaLayout, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	f.Time = t
	return nil
}

func (f Fecha) Value() (driver.Value, error) {
	return f.Format(FechaLayout), nil
}

func (f *Fecha) Scan(v interface{}) error {
	switch t := v.(type) {
	case time.Time:
		f.Time = t
		return nil
	case []byte:
		return f.scanString(string(t))
	case string:
		return f.scanString(t)
	case nil:
		return nil
	default:
		return fmt.Errorf("no se puede leer fecha desde %T", v)
	}
}

func (f *Fecha) scanString(s string) error {
	t, err := time.Parse(FechaLayout, s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// GormDataType maps Fecha to a DATE column.
func (Fecha) GormDataType() string {
	return "date"
}

// Antes reports whether f is strictly before o, comparing dates only.
func (f Fecha) Antes(o Fecha) bool {
	return f.Time.Before(o.Time)
}
