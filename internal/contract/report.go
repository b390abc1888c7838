package contract

import (
	"time"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
)

type SCurvePoint = schedule.SCurvePoint

type EvmReport = schedule.EvmReport

// CurveRequest scopes an S-curve computation. Start/End default to the
// project window; Mode defaults to auto-detection over the leaf set.
type CurveRequest struct {
	ProjectID string
	Start     *time.Time
	End       *time.Time
	Mode      domain.ScopeMode
	Today     time.Time
}

type CurveResponse struct {
	ProjectID string
	Mode      domain.ScopeMode
	Points    []SCurvePoint
}
