// Package assetService orchestrates equipment and vehicle operations:
// CRUD, parts reconciliation, and the realtime notifications that follow
// successful mutations.
package assetService

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/MinIO"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/parts"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/assetRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/partsService"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/logger"
)

type Service struct {
	assets   *assetRepo.AssetRepository
	parts    *partsService.Service
	storage  *MinIO.MinIOClient
	notifier Notifier
}

// Notifier is the slice of the realtime publisher the service needs.
type Notifier interface {
	Publish(ctx context.Context, resource, action, id string) error
}

func New(assets *assetRepo.AssetRepository, partsSvc *partsService.Service, storage *MinIO.MinIOClient, notifier Notifier) *Service {
	return &Service{
		assets:   assets,
		parts:    partsSvc,
		storage:  storage,
		notifier: notifier,
	}
}

// PartsEdit is one parts-reconciliation call collected from the multipart
// request: an optional baseline tree override, deletions, and new uploads.
type PartsEdit struct {
	// Baseline overrides the persisted tree as the preservation baseline
	// when the client sent partsStructure. Nil means use the stored tree.
	Baseline *parts.Tree
	// StructureOnly is the pure structural edit path (equipmentParts
	// field, no files attached): the tree is taken as-is and persisted.
	StructureOnly    *parts.Tree
	Deletions        parts.DeletionRequest
	LegacyDeleteURLs []string
	Uploads          []partsService.Upload
}

func (s *Service) CreateEquipment(ctx context.Context, e *asset.Equipment) error {
	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.Parts = parts.NewTree()
	column, err := e.Parts.Encode()
	if err != nil {
		return err
	}
	e.PartsColumn = column

	if err := s.assets.CreateEquipment(ctx, e); err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	s.notify(ctx, "equipment", "created", e.ID)
	return nil
}

func (s *Service) GetEquipment(ctx context.Context, id uuid.UUID) (*asset.Equipment, error) {
	e, err := s.assets.GetEquipmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	if e == nil {
		return nil, asset.ErrNotFound
	}
	if e.Parts, err = parts.Decode(e.PartsColumn); err != nil {
		return nil, fmt.Errorf("failed to decode equipment parts: %w", err)
	}
	return e, nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]*asset.Equipment, error) {
	list, err := s.assets.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	for _, e := range list {
		if e.Parts, err = parts.Decode(e.PartsColumn); err != nil {
			return nil, fmt.Errorf("failed to decode equipment parts: %w", err)
		}
	}
	return list, nil
}

func (s *Service) UpdateEquipment(ctx context.Context, e *asset.Equipment) (*asset.Equipment, error) {
	if _, err := s.GetEquipment(ctx, e.ID); err != nil {
		return nil, err
	}
	if err := s.assets.UpdateEquipment(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	s.notify(ctx, "equipment", "updated", e.ID)
	return s.GetEquipment(ctx, e.ID)
}

func (s *Service) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	e, err := s.GetEquipment(ctx, id)
	if err != nil {
		return err
	}
	s.cleanupParts(ctx, s.storage.EquipmentBucket, e.Parts)
	if err := s.assets.DeleteEquipment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	s.notify(ctx, "equipment", "deleted", id)
	return nil
}

// ReconcileEquipmentParts runs one parts reconciliation pass against an
// equipment record and returns the updated record. The tree write is the
// single persistence step; storage side effects happen inside the pass.
func (s *Service) ReconcileEquipmentParts(ctx context.Context, id uuid.UUID, edit PartsEdit) (*asset.Equipment, error) {
	e, err := s.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.reconcile(ctx, reconcileTarget{
		bucket:          s.storage.EquipmentBucket,
		containerPrefix: "equipment-" + id.String(),
		stored:          e.Parts,
	}, edit)
	if err != nil {
		return nil, err
	}

	column, err := next.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.assets.UpdateEquipmentParts(ctx, id, column); err != nil {
		return nil, fmt.Errorf("failed to persist equipment parts: %w", err)
	}

	s.notify(ctx, "equipment", "updated", id)

	e.Parts = next
	e.PartsColumn = column
	return e, nil
}

// OpenEquipmentPartFile streams one part blob referenced by its public URL,
// for clients that cannot reach the storage endpoint directly. The URL is
// validated against the equipment bucket before any lookup runs.
func (s *Service) OpenEquipmentPartFile(ctx context.Context, id uuid.UUID, rawURL string) (io.ReadCloser, int64, string, error) {
	key, ok := partsService.ObjectKeyFromURL(rawURL, s.storage.EquipmentBucket)
	if !ok {
		return nil, 0, "", fmt.Errorf("%w: url does not reference an equipment part", asset.ErrBadPayload)
	}
	if _, err := s.GetEquipment(ctx, id); err != nil {
		return nil, 0, "", err
	}
	return s.openBlob(ctx, s.storage.EquipmentBucket, key)
}

func (s *Service) OpenVehiclePartFile(ctx context.Context, id uuid.UUID, rawURL string) (io.ReadCloser, int64, string, error) {
	key, ok := partsService.ObjectKeyFromURL(rawURL, s.storage.VehicleBucket)
	if !ok {
		return nil, 0, "", fmt.Errorf("%w: url does not reference a vehicle part", asset.ErrBadPayload)
	}
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return nil, 0, "", err
	}
	return s.openBlob(ctx, s.storage.VehicleBucket, key)
}

func (s *Service) openBlob(ctx context.Context, bucket, key string) (io.ReadCloser, int64, string, error) {
	rc, size, contentType, err := s.storage.Download(ctx, bucket, key)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, "", asset.ErrNotFound
		}
		return nil, 0, "", fmt.Errorf("failed to download part blob: %w", err)
	}
	return rc, size, contentType, nil
}

func (s *Service) CreateVehicle(ctx context.Context, v *asset.Vehicle) error {
	now := time.Now().UTC()
	v.ID = uuid.New()
	v.CreatedAt = now
	v.UpdatedAt = now
	v.Parts = parts.NewTree()
	column, err := v.Parts.Encode()
	if err != nil {
		return err
	}
	v.PartsColumn = column

	if err := s.assets.CreateVehicle(ctx, v); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	s.notify(ctx, "vehicle", "created", v.ID)
	return nil
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*asset.Vehicle, error) {
	v, err := s.assets.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if v == nil {
		return nil, asset.ErrNotFound
	}
	if v.Parts, err = parts.Decode(v.PartsColumn); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle parts: %w", err)
	}
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context) ([]*asset.Vehicle, error) {
	list, err := s.assets.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	for _, v := range list {
		if v.Parts, err = parts.Decode(v.PartsColumn); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle parts: %w", err)
		}
	}
	return list, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, v *asset.Vehicle) (*asset.Vehicle, error) {
	if _, err := s.GetVehicle(ctx, v.ID); err != nil {
		return nil, err
	}
	if err := s.assets.UpdateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	s.notify(ctx, "vehicle", "updated", v.ID)
	return s.GetVehicle(ctx, v.ID)
}

func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	s.cleanupParts(ctx, s.storage.VehicleBucket, v.Parts)
	if err := s.assets.DeleteVehicle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	s.notify(ctx, "vehicle", "deleted", id)
	return nil
}

func (s *Service) ReconcileVehicleParts(ctx context.Context, id uuid.UUID, edit PartsEdit) (*asset.Vehicle, error) {
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.reconcile(ctx, reconcileTarget{
		bucket:          s.storage.VehicleBucket,
		containerPrefix: "vehicle-" + id.String(),
		stored:          v.Parts,
	}, edit)
	if err != nil {
		return nil, err
	}

	column, err := next.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.assets.UpdateVehicleParts(ctx, id, column); err != nil {
		return nil, fmt.Errorf("failed to persist vehicle parts: %w", err)
	}

	s.notify(ctx, "vehicle", "updated", id)

	v.Parts = next
	v.PartsColumn = column
	return v, nil
}

type reconcileTarget struct {
	bucket          string
	containerPrefix string
	stored          parts.Tree
}

func (s *Service) reconcile(ctx context.Context, target reconcileTarget, edit PartsEdit) (parts.Tree, error) {
	// Pure structural edit: no storage side effects, the submitted tree
	// replaces the stored one wholesale.
	if edit.StructureOnly != nil {
		return *edit.StructureOnly, nil
	}

	previous := target.stored
	if edit.Baseline != nil {
		previous = *edit.Baseline
	}

	return s.parts.Reconcile(ctx, partsService.Request{
		Bucket:           target.bucket,
		ContainerPrefix:  target.containerPrefix,
		Previous:         previous,
		Deletions:        edit.Deletions,
		LegacyDeleteURLs: edit.LegacyDeleteURLs,
		Uploads:          edit.Uploads,
	})
}

// cleanupParts best-effort deletes every blob referenced by a record's tree
// when the record itself is deleted.
func (s *Service) cleanupParts(ctx context.Context, bucket string, tree parts.Tree) {
	log := logger.GetLogger(ctx)
	remove := func(f parts.File) {
		u := f.URL
		if u == "" {
			u = f.Preview
		}
		if u == "" {
			return
		}
		key, ok := partsService.ObjectKeyFromURL(u, bucket)
		if !ok {
			return
		}
		if err := s.storage.Delete(ctx, bucket, key); err != nil {
			log.Warn("failed to delete part blob during record cleanup",
				zap.String("key", key), zap.Error(err))
		}
	}
	for _, f := range tree.RootFiles {
		remove(f)
	}
	for _, folder := range tree.Folders {
		for _, f := range folder.Files {
			remove(f)
		}
	}
}

func (s *Service) notify(ctx context.Context, resource, action string, id uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, resource, action, id.String()); err != nil {
		logger.GetLogger(ctx).Warn("failed to publish realtime event",
			zap.String("resource", resource), zap.String("action", action), zap.Error(err))
	}
}
