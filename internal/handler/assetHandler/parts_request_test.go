package assetHandler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
)

func buildForm(t *testing.T, values map[string]string, files map[string]string) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, val := range values {
		require.NoError(t, w.WriteField(key, val))
	}
	for key, content := range files {
		fw, err := w.CreateFormFile(key, key+".bin")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestParsePartsForm_StructuralFields(t *testing.T) {
	form := buildForm(t, map[string]string{
		"partsStructure": `{"rootFiles":[{"id":"r1","name":"a.pdf","url":"https://x/equipments/a.pdf","preview":"https://x/equipments/a.pdf","type":"document"}],"folders":[]}`,
		"deleteParts":    `{"files":[{"fileId":"r2","fileName":"b.pdf"}],"folders":[{"folderId":"f1","folderName":"Engine"}]}`,
		"filesToDelete":  `["https://x/equipments/c.pdf"]`,
	}, nil)

	edit, closeAll, err := parsePartsForm(form)
	require.NoError(t, err)
	defer closeAll()

	require.NotNil(t, edit.Baseline)
	assert.Len(t, edit.Baseline.RootFiles, 1)
	assert.Equal(t, "r2", edit.Deletions.Files[0].FileID)
	assert.Equal(t, "f1", edit.Deletions.Folders[0].FolderID)
	assert.Equal(t, []string{"https://x/equipments/c.pdf"}, edit.LegacyDeleteURLs)
	assert.Nil(t, edit.StructureOnly)
	assert.Empty(t, edit.Uploads)
}

func TestParsePartsForm_MalformedJSONAborts(t *testing.T) {
	for _, field := range []string{"partsStructure", "deleteParts", "filesToDelete", "equipmentParts"} {
		form := buildForm(t, map[string]string{field: `{not json`}, nil)
		_, _, err := parsePartsForm(form)
		require.Error(t, err, field)
		assert.True(t, errors.Is(err, asset.ErrBadPayload), field)
	}
}

func TestParsePartsForm_Uploads(t *testing.T) {
	form := buildForm(t, map[string]string{
		"partsFile_root_new_0_name":           "manual.pdf",
		"partsFile_root_new_0_originalIndex":  "0",
		"partsFile_folder_new_0_name":         "bolt.jpg",
		"partsFile_folder_new_0_folder":       "Engine",
		"partsFile_folder_new_0_originalFolderIndex": "0",
		"partsFile_folder_new_0_originalFileIndex":   "1",
	}, map[string]string{
		"partsFile_root_new_0":   "pdf bytes",
		"partsFile_folder_new_0": "jpg bytes",
	})

	edit, closeAll, err := parsePartsForm(form)
	require.NoError(t, err)
	defer closeAll()

	require.Len(t, edit.Uploads, 2)

	byKey := map[string]int{}
	for i, up := range edit.Uploads {
		byKey[up.FormKey] = i
	}
	root := edit.Uploads[byKey["partsFile_root_new_0"]]
	assert.Equal(t, "manual.pdf", root.Name)
	assert.Empty(t, root.FolderName)

	folder := edit.Uploads[byKey["partsFile_folder_new_0"]]
	assert.Equal(t, "bolt.jpg", folder.Name)
	assert.Equal(t, "Engine", folder.FolderName)
}

func TestParsePartsForm_NameFallsBackToFilename(t *testing.T) {
	form := buildForm(t, nil, map[string]string{"partsFile_root_new_0": "bytes"})

	edit, closeAll, err := parsePartsForm(form)
	require.NoError(t, err)
	defer closeAll()

	require.Len(t, edit.Uploads, 1)
	assert.Equal(t, "partsFile_root_new_0.bin", edit.Uploads[0].Name)
}

func TestParsePartsForm_FolderUploadRequiresFolderField(t *testing.T) {
	form := buildForm(t, nil, map[string]string{"partsFile_folder_new_0": "bytes"})

	_, _, err := parsePartsForm(form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asset.ErrBadPayload))
}

func TestParsePartsForm_StructureOnlyPath(t *testing.T) {
	t.Run("honored without files", func(t *testing.T) {
		form := buildForm(t, map[string]string{
			"equipmentParts": `{"rootFiles":[],"folders":[{"id":"f1","name":"Engine","files":[]}]}`,
		}, nil)

		edit, closeAll, err := parsePartsForm(form)
		require.NoError(t, err)
		defer closeAll()

		require.NotNil(t, edit.StructureOnly)
		assert.Len(t, edit.StructureOnly.Folders, 1)
	})

	t.Run("ignored when files ride along", func(t *testing.T) {
		form := buildForm(t, map[string]string{
			"equipmentParts":            `{"rootFiles":[],"folders":[]}`,
			"partsFile_root_new_0_name": "a.pdf",
		}, map[string]string{"partsFile_root_new_0": "bytes"})

		edit, closeAll, err := parsePartsForm(form)
		require.NoError(t, err)
		defer closeAll()

		assert.Nil(t, edit.StructureOnly)
		assert.Len(t, edit.Uploads, 1)
	})
}

func TestUploadKeys_OrderedByNumericSuffix(t *testing.T) {
	form := buildForm(t, nil, map[string]string{
		"partsFile_root_new_10": "a",
		"partsFile_root_new_2":  "b",
		"partsFile_root_new_0":  "c",
	})

	keys := uploadKeys(form)
	assert.Equal(t, []string{"partsFile_root_new_0", "partsFile_root_new_2", "partsFile_root_new_10"}, keys)
}
