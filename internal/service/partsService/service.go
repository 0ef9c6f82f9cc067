// Package partsService implements the parts-tree reconciler: it merges a
// previous parts tree, a deletion request, and new file uploads into the
// next tree, issuing the storage deletes and uploads needed to realize it.
package partsService

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/parts"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/logger"
)

// Storage is the slice of the object-storage client the reconciler needs.
type Storage interface {
	Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// Upload is one new file targeted at the root or a named folder. FormKey is
// the raw multipart field name, used only to skip duplicate submissions.
// OriginalIndex is advisory display metadata; storage positions come from
// the resulting container length instead.
type Upload struct {
	FormKey       string
	Name          string
	FolderName    string
	OriginalIndex int
	Content       io.Reader
	Size          int64
	ContentType   string
}

// Request carries everything one reconciliation pass needs.
type Request struct {
	Bucket          string
	ContainerPrefix string
	Previous        parts.Tree
	Deletions       parts.DeletionRequest
	// LegacyDeleteURLs is the old flat deletion path, processed in
	// addition to Deletions.
	LegacyDeleteURLs []string
	Uploads          []Upload
}

// Reconcile runs the full pass: deletions first, then survivor
// preservation, then new uploads. Individual storage failures are logged
// and the affected file is dropped from the result; they never abort the
// whole operation. The caller persists the returned tree.
func (s *Service) Reconcile(ctx context.Context, req Request) (parts.Tree, error) {
	log := logger.GetLogger(ctx)

	deletedURLs := make(map[string]struct{})
	deletedIDs := make(map[string]struct{})
	deletedFolders := make(map[string]struct{})

	// Deletions are resolved before anything else so that a file both kept
	// and deleted in the same request resolves to deleted, and so replaced
	// files free their names before replacements upload.
	deleteByURL := func(rawURL string) {
		if rawURL == "" {
			return
		}
		deletedURLs[rawURL] = struct{}{}
		key, ok := ObjectKeyFromURL(rawURL, req.Bucket)
		if !ok {
			log.Warn("skipping storage delete, bucket marker not found in url",
				zap.String("url", rawURL), zap.String("bucket", req.Bucket))
			return
		}
		if err := s.storage.Delete(ctx, req.Bucket, key); err != nil {
			log.Warn("failed to delete storage object",
				zap.String("key", key), zap.Error(err))
		}
	}

	for _, u := range req.LegacyDeleteURLs {
		deleteByURL(u)
	}
	for _, f := range req.Deletions.Files {
		if f.FileURL != "" {
			deleteByURL(f.FileURL)
		}
		if f.FileID != "" {
			deletedIDs[f.FileID] = struct{}{}
		}
	}
	for _, fo := range req.Deletions.Folders {
		deletedFolders[fo.FolderID] = struct{}{}
	}

	// Id-keyed deletions of files that already live in storage resolve to
	// their URLs through the previous tree, so their blobs are removed too.
	for _, f := range req.Previous.RootFiles {
		if _, gone := deletedIDs[f.ID]; gone {
			deleteByURL(fileURL(f))
		}
	}
	for _, folder := range req.Previous.Folders {
		for _, f := range folder.Files {
			if _, gone := deletedIDs[f.ID]; gone {
				deleteByURL(fileURL(f))
			}
		}
	}

	// Folder deletion cascades: every blob referenced inside a deleted
	// folder is removed from storage so it does not orphan.
	for _, folder := range req.Previous.Folders {
		if _, gone := deletedFolders[folder.ID]; !gone {
			continue
		}
		for _, f := range folder.Files {
			deleteByURL(fileURL(f))
		}
	}

	next := parts.NewTree()

	// Preserve survivors. Files without a URL are dangling placeholders
	// that never made it to storage and are not carried over.
	for _, f := range req.Previous.RootFiles {
		if survivor, ok := preserve(f, deletedURLs, deletedIDs); ok {
			next.RootFiles = append(next.RootFiles, survivor)
		}
	}
	for _, folder := range req.Previous.Folders {
		if _, gone := deletedFolders[folder.ID]; gone {
			continue
		}
		kept := parts.Folder{ID: folder.ID, Name: folder.Name, Files: []parts.File{}}
		for _, f := range folder.Files {
			if survivor, ok := preserve(f, deletedURLs, deletedIDs); ok {
				kept.Files = append(kept.Files, survivor)
			}
		}
		next.Folders = append(next.Folders, kept)
	}

	// New uploads: root files first, then folder files, each container in
	// caller-submission order. Duplicate form keys are uploaded once.
	seenKeys := make(map[string]struct{})

	for _, up := range req.Uploads {
		if up.FolderName != "" {
			continue
		}
		if skipDuplicate(log, seenKeys, up.FormKey) {
			continue
		}
		file, err := s.uploadOne(ctx, req, up, "", len(next.RootFiles)+1)
		if err != nil {
			log.Warn("failed to upload root part file",
				zap.String("name", up.Name), zap.Error(err))
			continue
		}
		next.RootFiles = append(next.RootFiles, file)
	}

	for _, up := range req.Uploads {
		if up.FolderName == "" {
			continue
		}
		if skipDuplicate(log, seenKeys, up.FormKey) {
			continue
		}
		// Uploads never implicitly create folders.
		folder := next.FolderByName(up.FolderName)
		if folder == nil {
			log.Warn("dropping upload, target folder not found",
				zap.String("folder", up.FolderName), zap.String("name", up.Name))
			continue
		}
		file, err := s.uploadOne(ctx, req, up, up.FolderName, len(folder.Files)+1)
		if err != nil {
			log.Warn("failed to upload folder part file",
				zap.String("folder", up.FolderName), zap.String("name", up.Name), zap.Error(err))
			continue
		}
		folder.Files = append(folder.Files, file)
	}

	return next, nil
}

func (s *Service) uploadOne(ctx context.Context, req Request, up Upload, folderName string, position int) (parts.File, error) {
	key := ObjectKey(req.ContainerPrefix, folderName, position, up.Name)
	publicURL, err := s.storage.Upload(ctx, req.Bucket, key, up.Content, up.Size, up.ContentType)
	if err != nil {
		return parts.File{}, err
	}

	id := fmt.Sprintf("root_new_%s", uuid.New().String())
	if folderName != "" {
		id = fmt.Sprintf("folder_%s_new_%s", folderName, uuid.New().String())
	}

	return parts.File{
		ID:      id,
		Name:    up.Name,
		URL:     publicURL,
		Preview: publicURL,
		Type:    parts.TypeFromContentType(up.ContentType, up.Name),
	}, nil
}

func skipDuplicate(log *logger.Logger, seen map[string]struct{}, formKey string) bool {
	if _, dup := seen[formKey]; dup {
		log.Warn("skipping duplicate upload form key", zap.String("key", formKey))
		return true
	}
	seen[formKey] = struct{}{}
	return false
}

func fileURL(f parts.File) string {
	if f.URL != "" {
		return f.URL
	}
	return f.Preview
}

func preserve(f parts.File, deletedURLs, deletedIDs map[string]struct{}) (parts.File, bool) {
	u := fileURL(f)
	if u == "" {
		return parts.File{}, false
	}
	if _, gone := deletedURLs[u]; gone {
		return parts.File{}, false
	}
	if _, gone := deletedIDs[f.ID]; gone {
		return parts.File{}, false
	}

	f.URL = u
	f.Preview = u
	if f.Type == "" {
		f.Type = parts.TypeFromURL(u)
	}
	return f, true
}
