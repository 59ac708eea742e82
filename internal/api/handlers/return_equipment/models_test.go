package return_equipment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	returnEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment"
)

func TestReturnEquipmentRequest_ToUseCaseRequest(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantDismiss bool
	}{
		{name: "dismiss set", payload: `{"qty":1,"condition":"not_returned","dismiss":true}`, wantDismiss: true},
		{name: "dismiss omitted", payload: `{"qty":1,"condition":"not_returned"}`},
	}

	actor := &domain.Actor{UserID: 5, Role: domain.RoleStaff}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ReturnEquipmentRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &body))

			req := body.ToUseCaseRequest(actor, 7)
			assert.Equal(t, int64(7), req.ItemID)
			assert.Equal(t, "not_returned", req.Condition)
			assert.Equal(t, tt.wantDismiss, req.Dismiss)
		})
	}
}

func TestFromUseCaseResponse(t *testing.T) {
	returnedAt := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		resp           *returnEquipment.Response
		wantReturnedAt *string
	}{
		{
			name:           "request closed",
			resp:           &returnEquipment.Response{ItemID: 1, Condition: "lost", RequestStatus: "done", ReturnedAt: &returnedAt},
			wantReturnedAt: func() *string { s := "2025-06-10T20:00:00Z"; return &s }(),
		},
		{
			name: "request open",
			resp: &returnEquipment.Response{ItemID: 1, Condition: "not_returned", Dismissed: true, RequestStatus: "approved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromUseCaseResponse(tt.resp)
			assert.Equal(t, tt.wantReturnedAt, got.ReturnedAt)
			assert.Equal(t, tt.resp.Dismissed, got.Dismissed)
			assert.Equal(t, tt.resp.Condition, got.Condition)
		})
	}
}
