// Package secret masks sensitive configuration values, like the postgres password,
// so they do not end up in logs, json responses or printed config dumps.
package secret

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log/slog"
)

const mask = "******"

var ErrScan = errors.New("failed to scan Secret: value is not a string")

func New(secret string) Secret {
	return Secret{secret: &secret}
}

// Secret masks its value in every text representation.
// Use Secret() to access the plain value.
type Secret struct {
	// a pointer makes the value harder to reach via reflection.
	secret *string
}

// Secret returns the plain value, or "" for the zero Secret.
func (s Secret) Secret() string {
	if s.secret == nil {
		return ""
	}

	return *s.secret
}

func (s Secret) String() string {
	return mask
}

// LogValue keeps the value out of structured logs, independent of the handler.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(mask)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(mask) //nolint:wrapcheck // export the underlying error
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err != nil {
		return err //nolint:wrapcheck // export the underlying error
	}

	s.secret = &plain

	return nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(mask), nil
}

// UnmarshalText is used by the config loading, to decode the password from viper.
func (s *Secret) UnmarshalText(data []byte) error {
	text := string(data)
	s.secret = &text

	return nil
}

func (s *Secret) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		s.secret = nil
	case string:
		s.secret = &v
	case []byte:
		text := string(v)
		s.secret = &text
	default:
		return ErrScan
	}

	return nil
}

func (s Secret) Value() (driver.Value, error) {
	if s.secret == nil {
		return nil, nil //nolint:nilnil // a NULL column
	}

	return *s.secret, nil
}
