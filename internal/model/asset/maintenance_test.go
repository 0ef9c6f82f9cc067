package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name string
		from asset.ReportStatus
		to   asset.ReportStatus
		ok   bool
	}{
		{"reported to in progress", asset.ReportReported, asset.ReportInProgress, true},
		{"in progress to completed", asset.ReportInProgress, asset.ReportCompleted, true},
		{"no-op stays valid", asset.ReportInProgress, asset.ReportInProgress, true},
		{"skipping a step", asset.ReportReported, asset.ReportCompleted, false},
		{"moving backwards", asset.ReportCompleted, asset.ReportInProgress, false},
		{"completed is terminal", asset.ReportCompleted, asset.ReportReported, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := asset.ValidateTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, asset.ErrBadPayload)
			}
		})
	}
}
