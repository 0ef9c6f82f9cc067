package parts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/parts"
)

func TestClassify(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		kind, _ := parts.Classify(nil)
		assert.Equal(t, parts.PersistedEmpty, kind)

		kind, _ = parts.Classify([]string{""})
		assert.Equal(t, parts.PersistedEmpty, kind)

		kind, _ = parts.Classify([]string{"[]"})
		assert.Equal(t, parts.PersistedEmpty, kind)
	})

	t.Run("legacy url list", func(t *testing.T) {
		kind, raw := parts.Classify([]string{`["https://x/equipments/a.jpg"]`})
		assert.Equal(t, parts.PersistedLegacyURLs, kind)
		assert.Equal(t, `["https://x/equipments/a.jpg"]`, raw)
	})

	t.Run("plain url elements", func(t *testing.T) {
		// oldest rows: URL strings sit in the column directly, no JSON
		kind, raw := parts.Classify([]string{"https://x/equipments/equipment-5/a.pdf"})
		assert.Equal(t, parts.PersistedLegacyURLs, kind)
		assert.Empty(t, raw)

		kind, raw = parts.Classify([]string{
			"https://x/equipments/equipment-5/a.pdf",
			"https://x/equipments/equipment-5/b.jpg",
		})
		assert.Equal(t, parts.PersistedLegacyURLs, kind)
		assert.Empty(t, raw)
	})

	t.Run("structured tree", func(t *testing.T) {
		kind, _ := parts.Classify([]string{`{"rootFiles":[],"folders":[]}`})
		assert.Equal(t, parts.PersistedTree, kind)
	})
}

func TestDecode_Legacy(t *testing.T) {
	tree, err := parts.Decode([]string{`["https://x/equipments/e-1/manual.pdf","https://x/equipments/e-1/photo.JPG"]`})
	assert.NoError(t, err)
	assert.Empty(t, tree.Folders)
	assert.Len(t, tree.RootFiles, 2)

	assert.Equal(t, "legacy_0", tree.RootFiles[0].ID)
	assert.Equal(t, "manual.pdf", tree.RootFiles[0].Name)
	assert.Equal(t, parts.TypeDocument, tree.RootFiles[0].Type)

	assert.Equal(t, "legacy_1", tree.RootFiles[1].ID)
	assert.Equal(t, parts.TypeImage, tree.RootFiles[1].Type)
	assert.Equal(t, tree.RootFiles[1].URL, tree.RootFiles[1].Preview)
}

func TestDecode_LegacyPlainElements(t *testing.T) {
	tree, err := parts.Decode([]string{
		"https://x/equipments/equipment-5/a.pdf",
		"https://x/equipments/equipment-5/b.jpg",
	})
	assert.NoError(t, err)
	assert.Empty(t, tree.Folders)
	assert.Len(t, tree.RootFiles, 2)

	assert.Equal(t, "legacy_0", tree.RootFiles[0].ID)
	assert.Equal(t, "a.pdf", tree.RootFiles[0].Name)
	assert.Equal(t, parts.TypeDocument, tree.RootFiles[0].Type)

	assert.Equal(t, "legacy_1", tree.RootFiles[1].ID)
	assert.Equal(t, parts.TypeImage, tree.RootFiles[1].Type)
	assert.Equal(t, tree.RootFiles[1].URL, tree.RootFiles[1].Preview)

	// a single plain URL element decodes the same way
	tree, err = parts.Decode([]string{"https://x/vehicles/vehicle-2/plate.png"})
	assert.NoError(t, err)
	assert.Len(t, tree.RootFiles, 1)
	assert.Equal(t, "legacy_0", tree.RootFiles[0].ID)
	assert.Equal(t, parts.TypeImage, tree.RootFiles[0].Type)
}

func TestDecode_Structured(t *testing.T) {
	raw := `{"rootFiles":[{"id":"r1","name":"a.png","url":"https://x/equipments/a.png","preview":"https://x/equipments/a.png","type":"image"}],"folders":[{"id":"f1","name":"Engine","files":[]}]}`
	tree, err := parts.Decode([]string{raw})
	assert.NoError(t, err)
	assert.Len(t, tree.RootFiles, 1)
	assert.Len(t, tree.Folders, 1)
	assert.Equal(t, "Engine", tree.Folders[0].Name)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := parts.Decode([]string{`{"rootFiles":`})
	assert.Error(t, err)

	_, err = parts.Decode([]string{`[{"not":"a url"}]`})
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	tree := parts.NewTree()
	tree.RootFiles = append(tree.RootFiles, parts.File{
		ID: "r1", Name: "a.png", URL: "https://x/equipments/a.png", Preview: "https://x/equipments/a.png", Type: parts.TypeImage,
	})

	column, err := tree.Encode()
	assert.NoError(t, err)
	assert.Len(t, column, 1)

	decoded, err := parts.Decode(column)
	assert.NoError(t, err)
	assert.Equal(t, tree, decoded)
}

func TestTypeFromURL(t *testing.T) {
	assert.Equal(t, parts.TypeImage, parts.TypeFromURL("https://x/b/photo.WEBP"))
	assert.Equal(t, parts.TypeImage, parts.TypeFromURL("https://x/b/photo.jpg?v=2"))
	assert.Equal(t, parts.TypeDocument, parts.TypeFromURL("https://x/b/manual.pdf"))
	assert.Equal(t, parts.TypeDocument, parts.TypeFromURL("https://x/b/noext"))
}

func TestTypeFromContentType(t *testing.T) {
	assert.Equal(t, parts.TypeImage, parts.TypeFromContentType("image/png", "whatever.bin"))
	assert.Equal(t, parts.TypeDocument, parts.TypeFromContentType("application/pdf", "photo.jpg"))
	assert.Equal(t, parts.TypeImage, parts.TypeFromContentType("", "photo.jpg"))
}

func TestFolderByName(t *testing.T) {
	tree := parts.NewTree()
	tree.Folders = append(tree.Folders, parts.Folder{ID: "f1", Name: "Engine", Files: []parts.File{}})

	assert.NotNil(t, tree.FolderByName("Engine"))
	assert.Nil(t, tree.FolderByName("Hydraulics"))

	// returned pointer aliases the tree, appends must be visible
	tree.FolderByName("Engine").Files = append(tree.FolderByName("Engine").Files, parts.File{ID: "x"})
	assert.Len(t, tree.Folders[0].Files, 1)
}
