package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Money carries a decimal amount as the backend's ORM serializes it: usually
// a string ("10.00") but occasionally a bare number. It round-trips as a
// string and exposes a float accessor for display math.
type Money string

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Money(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("model: money: %w", err)
	}
	*m = Money(strconv.FormatFloat(f, 'f', 2, 64))
	return nil
}

func (m Money) String() string { return string(m) }

// Float parses the amount; malformed values come back as 0.
func (m Money) Float() float64 {
	f, err := strconv.ParseFloat(string(m), 64)
	if err != nil {
		return 0
	}
	return f
}

// BoolFlag tolerates the backend encoding booleans as JSON bools or 0/1
// numbers (the barbero payload nests `bloqueado` as a number).
type BoolFlag bool

func (b *BoolFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1":
		*b = true
		return nil
	case "false", "0", "null":
		*b = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("model: bool flag: %w", err)
	}
	*b = n != 0
	return nil
}

func (b BoolFlag) Bool() bool { return bool(b) }

// FlexTime parses the timestamp formats the backend actually emits:
// RFC3339 (with or without fractional seconds) and the plain
// "2006-01-02 15:04:05" form. Unparseable values decode to the zero time.
type FlexTime struct {
	time.Time
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null and absent fields stay zero
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
