package rem

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. Models take a Clock so record
// timestamps and generated file names are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator supplies unique identifiers for photo file names.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
