package assetService_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/MinIO"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/assetService"
)

func TestOpenPartFile_URLOutsideBucket(t *testing.T) {
	// URL validation runs before any repository or storage call, so a bare
	// client carrying only the bucket names exercises the rejection path.
	svc := assetService.New(nil, nil, &MinIO.MinIOClient{
		EquipmentBucket: "equipments",
		VehicleBucket:   "vehicles",
	}, nil)

	_, _, _, err := svc.OpenEquipmentPartFile(context.Background(), uuid.New(),
		"https://cdn.example.com/other-bucket/a.png")
	assert.ErrorIs(t, err, asset.ErrBadPayload)

	// an equipment URL handed to the vehicle endpoint is rejected too
	_, _, _, err = svc.OpenVehiclePartFile(context.Background(), uuid.New(),
		"https://cdn.example.com/equipments/equipment-1/a.png")
	assert.ErrorIs(t, err, asset.ErrBadPayload)
}
