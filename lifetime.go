package locator

import (
	"encoding/json"
	"fmt"
)

// Lifetime specifies how a registered service is produced on resolution.
// The lifetime determines whether instances are cached and shared or
// created fresh per request.
type Lifetime int

const (
	// Singleton specifies that a single instance of the service is created.
	// The factory is invoked once, at registration time, and the result is
	// cached for the lifetime of the locator.
	Singleton Lifetime = iota

	// Transient specifies that a new instance of the service is created
	// every time the service is resolved.
	Transient
)

// String returns the string representation of the Lifetime.
func (lt Lifetime) String() string {
	switch lt {
	case Singleton:
		return "Singleton"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown(%d)", int(lt))
	}
}

// IsValid checks if the lifetime is a known value.
func (lt Lifetime) IsValid() bool {
	return lt >= Singleton && lt <= Transient
}

// MarshalText implements encoding.TextMarshaler.
func (lt Lifetime) MarshalText() ([]byte, error) {
	return []byte(lt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *Lifetime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Singleton", "singleton":
		*lt = Singleton
	case "Transient", "transient":
		*lt = Transient
	default:
		return LifetimeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (lt Lifetime) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (lt *Lifetime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return lt.UnmarshalText([]byte(s))
}
