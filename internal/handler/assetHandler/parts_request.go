package assetHandler

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/parts"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/assetService"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/partsService"
)

const (
	rootFilePrefix   = "partsFile_root_new_"
	folderFilePrefix = "partsFile_folder_new_"
)

// parsePartsForm maps the multipart field contract onto a PartsEdit:
//
//	partsStructure          JSON baseline tree for preservation
//	deleteParts             JSON DeletionRequest
//	filesToDelete           JSON array of plain URLs (legacy path)
//	equipmentParts          JSON tree, pure structural edit (no files)
//	partsFile_root_new_<n>  binary root upload + _name/_originalIndex siblings
//	partsFile_folder_new_<n> binary folder upload + _name/_folder/... siblings
//
// Malformed JSON in any of the structural fields aborts the request with
// ErrBadPayload. The returned closer releases every opened upload.
func parsePartsForm(form *multipart.Form) (*assetService.PartsEdit, func(), error) {
	edit := &assetService.PartsEdit{}

	value := func(key string) string {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	if raw := value("partsStructure"); raw != "" {
		var tree parts.Tree
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid partsStructure JSON: %v", asset.ErrBadPayload, err)
		}
		edit.Baseline = &tree
	}

	if raw := value("deleteParts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &edit.Deletions); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid deleteParts JSON: %v", asset.ErrBadPayload, err)
		}
	}

	if raw := value("filesToDelete"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &edit.LegacyDeleteURLs); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid filesToDelete JSON: %v", asset.ErrBadPayload, err)
		}
	}

	fileKeys := uploadKeys(form)

	// equipmentParts is the simple path: honored only when no files ride
	// along, in which case the submitted tree is persisted as-is.
	if raw := value("equipmentParts"); raw != "" && len(fileKeys) == 0 {
		var tree parts.Tree
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid equipmentParts JSON: %v", asset.ErrBadPayload, err)
		}
		if tree.RootFiles == nil {
			tree.RootFiles = []parts.File{}
		}
		if tree.Folders == nil {
			tree.Folders = []parts.Folder{}
		}
		edit.StructureOnly = &tree
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, key := range fileKeys {
		for _, header := range form.File[key] {
			name := value(key + "_name")
			if name == "" {
				name = header.Filename
			}
			originalIndex, _ := strconv.Atoi(value(key + "_originalIndex"))

			folderName := ""
			if strings.HasPrefix(key, folderFilePrefix) {
				folderName = value(key + "_folder")
				if folderName == "" {
					closeAll()
					return nil, nil, fmt.Errorf("%w: missing %s_folder field", asset.ErrBadPayload, key)
				}
			}

			file, err := header.Open()
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to open upload %q: %w", key, err)
			}
			opened = append(opened, file)

			edit.Uploads = append(edit.Uploads, partsService.Upload{
				FormKey:       key,
				Name:          name,
				FolderName:    folderName,
				OriginalIndex: originalIndex,
				Content:       file,
				Size:          header.Size,
				ContentType:   header.Header.Get("Content-Type"),
			})
		}
	}

	return edit, closeAll, nil
}

// uploadKeys returns the upload field names in caller-submission order,
// which the numeric key suffix encodes (multipart maps do not keep order).
func uploadKeys(form *multipart.Form) []string {
	var keys []string
	for key := range form.File {
		if strings.HasPrefix(key, rootFilePrefix) || strings.HasPrefix(key, folderFilePrefix) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keySuffix(keys[i]) < keySuffix(keys[j])
	})
	return keys
}

func keySuffix(key string) int {
	idx := strings.LastIndex(key, "_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(key[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
