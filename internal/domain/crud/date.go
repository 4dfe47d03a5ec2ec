package crud

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/juju/mgo/v3/bson"
)

// dateLayouts aceptados en los cuerpos JSON, en orden.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date es una fecha/hora que acepta "YYYY-MM-DD" o RFC3339 en la entrada
// y siempre se serializa como RFC3339 en UTC.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC()}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}, nil
		}
	}
	return Date{}, errors.NotValidf("date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.NotValidf("date %s", string(b))
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GetBSON guarda la fecha como datetime nativo de Mongo.
func (d Date) GetBSON() (interface{}, error) {
	return d.UTC(), nil
}

func (d *Date) SetBSON(raw bson.Raw) error {
	var t time.Time
	if err := raw.Unmarshal(&t); err != nil {
		return errors.Annotate(err, "decoding date")
	}
	d.Time = t.UTC()
	return nil
}
