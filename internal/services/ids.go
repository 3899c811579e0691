package services

import (
	"time"

	"github.com/google/uuid"
)

// Entity id prefixes.
const (
	prefixThrift     = "l"
	prefixWorkshop   = "w"
	prefixEnrollment = "e"
	prefixCart       = "c"
	prefixOrder      = "o"
	prefixMessage    = "m"
	prefixReport     = "r"
)

func newID(prefix string) string { return prefix + "-" + uuid.NewString() }

var now = func() time.Time { return time.Now().UTC() }
