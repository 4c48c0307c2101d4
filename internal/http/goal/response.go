package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/goal"
)

type goalResponse struct {
	ID            int64       `json:"id"`
	Owner         uuid.UUID   `json:"owner"`
	Currency      string      `json:"currency"`
	Mode          goal.Mode   `json:"mode"`
	Target        int64       `json:"target"`
	DurationDays  int64       `json:"duration_days"`
	DonationBps   int64       `json:"donation_bps"`
	Deposited     int64       `json:"deposited"`
	Status        goal.Status `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	LastDepositAt *time.Time  `json:"last_deposit_at,omitempty"`
}

type detailsResponse struct {
	goalResponse

	CurrentValue int64 `json:"current_value"`
	YieldEarned  int64 `json:"yield_earned"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Owner:         g.Owner,
		Currency:      g.Currency,
		Mode:          g.Mode,
		Target:        g.Target,
		DurationDays:  int64(g.Duration / (24 * time.Hour)),
		DonationBps:   g.DonationBps,
		Deposited:     g.Deposited,
		Status:        g.Status,
		CreatedAt:     g.CreatedAt,
		LastDepositAt: g.LastDepositAt,
	}
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}

func toDetailsResponse(d *goal.Details) detailsResponse {
	return detailsResponse{
		goalResponse: toResponse(d.Goal),
		CurrentValue: d.CurrentValue,
		YieldEarned:  d.YieldEarned,
	}
}
