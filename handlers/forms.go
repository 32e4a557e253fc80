package handlers

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"gameclub/utils"
	"gameclub/web"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
	clockLayout    = "15:04"
)

var (
	dateTimeLayouts = []string{dateTimeLayout, "2006-01-02T15:04:05", "2006-01-02 15:04", dateLayout}
	clockLayouts    = []string{clockLayout, "15:04:05"}
)

// formParser converts submitted strings into typed values and collects a
// message for every input it cannot read.
type formParser struct {
	errs utils.FieldErrors
}

func (p *formParser) fail(field, message string) {
	p.errs.Add(field, message)
}

func (p *formParser) requiredInt(field, label, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.fail(field, label+" is required")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(field, label+" must be a whole number")
		return 0
	}
	return n
}

func (p *formParser) optionalInt(field, label, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(field, label+" must be a whole number")
		return nil
	}
	return &n
}

func (p *formParser) optionalFloat(field, label, raw string) *float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(field, label+" must be a number")
		return nil
	}
	return &f
}

// optionalUint reads a foreign key from a select. Empty and "0" mean none.
func (p *formParser) optionalUint(field, label, raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		p.fail(field, label+" is invalid")
		return nil
	}
	id := uint(n)
	return &id
}

func (p *formParser) requiredUint(field, label, raw string) uint {
	id := p.optionalUint(field, label, raw)
	if id == nil {
		if p.errs.For(field) == "" {
			p.fail(field, label+" is required")
		}
		return 0
	}
	return *id
}

func (p *formParser) requiredDateTime(field, label, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.fail(field, label+" is required")
		return time.Time{}
	}
	t, ok := parseIn(dateTimeLayouts, raw)
	if !ok {
		p.fail(field, label+" must be a valid date and time")
	}
	return t
}

func (p *formParser) optionalDay(field, label, raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	t, ok := parseIn([]string{dateLayout}, raw)
	if !ok {
		p.fail(field, label+" must be a valid date")
		return fallback
	}
	return t
}

// optionalClock reads a time of day. Full date-times are accepted too; only
// their clock part matters once the session normalizes it.
func (p *formParser) optionalClock(field, label, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, ok := parseIn(clockLayouts, raw)
	if !ok {
		t, ok = parseIn(dateTimeLayouts, raw)
	}
	if !ok {
		p.fail(field, label+" must be a valid time")
		return nil
	}
	return &t
}

func (p *formParser) optionalDate(field, label, raw string) *datatypes.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, ok := parseIn([]string{dateLayout}, raw)
	if !ok {
		p.fail(field, label+" must be a valid date")
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

// merge appends validation messages for fields that parsed cleanly and
// returns every message, nil when there are none.
func (p *formParser) merge(validation utils.FieldErrors) utils.FieldErrors {
	for _, e := range validation {
		if p.errs.For(e.Field) == "" {
			p.errs = append(p.errs, e)
		}
	}
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

func parseIn(layouts []string, raw string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// selectedIDs keeps positive ids in submission order, repeats included.
func selectedIDs(raw []string) []uint {
	out := make([]uint, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil || n == 0 {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}

func intText(n int) string { return strconv.Itoa(n) }

func optIntText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func optUintText(n *uint) string {
	if n == nil {
		return ""
	}
	return idText(*n)
}

func optFloatText(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func optTimeText(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func optDateText(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(dateLayout)
}

func idTexts(ids []uint) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idText(id)
	}
	return out
}

// input builds a plain form field and attaches its first error message.
func input(name, label, typ, value string, errs utils.FieldErrors) web.Field {
	return web.Field{Name: name, Label: label, Type: typ, Value: value, Error: errs.For(name)}
}

func required(f web.Field) web.Field {
	f.Required = true
	return f
}

func bounded(f web.Field, lo, hi string) web.Field {
	f.Min, f.Max = lo, hi
	return f
}
