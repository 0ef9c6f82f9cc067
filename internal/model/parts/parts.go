// Package parts holds the persisted parts-tree model attached to one
// equipment or vehicle record: files at the root plus one level of named
// folders. The tree is stored in the database as a single JSON string
// wrapped in a one-element text[] column.
package parts

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

type FileType string

const (
	TypeImage    FileType = "image"
	TypeDocument FileType = "document"
)

type File struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Preview string   `json:"preview"`
	Type    FileType `json:"type"`
}

type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Files []File `json:"files"`
}

type Tree struct {
	RootFiles []File   `json:"rootFiles"`
	Folders   []Folder `json:"folders"`
}

// DeletionRequest names files and folders to remove. A file may be keyed by
// id (new, not-yet-synced files) or by URL (files already in storage);
// both keys are honored.
type DeletionRequest struct {
	Files   []FileDeletion   `json:"files"`
	Folders []FolderDeletion `json:"folders"`
}

type FileDeletion struct {
	FileID   string `json:"fileId"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

type FolderDeletion struct {
	FolderID   string `json:"folderId"`
	FolderName string `json:"folderName"`
}

func NewTree() Tree {
	return Tree{RootFiles: []File{}, Folders: []Folder{}}
}

// FolderByName returns the first folder with the given display name, or nil.
// Folder names are not required to be unique; first match wins.
func (t *Tree) FolderByName(name string) *Folder {
	for i := range t.Folders {
		if t.Folders[i].Name == name {
			return &t.Folders[i]
		}
	}
	return nil
}

// Encode serializes the tree into the persisted column layout: a single
// JSON string as the sole element of a text[] value. The wrapping array is
// a legacy schema quirk that must be preserved on write.
func (t Tree) Encode() ([]string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parts tree: %w", err)
	}
	return []string{string(raw)}, nil
}

// PersistedKind classifies what actually sits in the parts column before any
// tree operation runs.
type PersistedKind int

const (
	PersistedEmpty PersistedKind = iota
	// PersistedLegacyURLs is the pre-tree format: a flat JSON array of
	// plain URL strings.
	PersistedLegacyURLs
	PersistedTree
)

// Classify inspects the raw column value and reports which persisted shape
// it carries along with the JSON payload to parse. The oldest rows hold the
// URL strings as column elements directly, with no JSON wrapping at all; a
// multi-element column, or a single element that is not JSON, classifies as
// legacy with an empty payload and Decode reads the elements themselves.
func Classify(column []string) (PersistedKind, string) {
	if len(column) == 0 {
		return PersistedEmpty, ""
	}
	raw := strings.TrimSpace(column[0])
	if len(column) == 1 {
		if raw == "" || raw == "null" || raw == "[]" {
			return PersistedEmpty, ""
		}
		if strings.HasPrefix(raw, "[") {
			return PersistedLegacyURLs, raw
		}
		if strings.HasPrefix(raw, "{") {
			return PersistedTree, raw
		}
	}
	return PersistedLegacyURLs, ""
}

// Decode normalizes whatever is persisted into a structured tree. Legacy URL
// arrays are synthesized into root files with ids legacy_<index>.
func Decode(column []string) (Tree, error) {
	kind, raw := Classify(column)
	switch kind {
	case PersistedEmpty:
		return NewTree(), nil
	case PersistedLegacyURLs:
		urls := column
		if raw != "" {
			urls = nil
			if err := json.Unmarshal([]byte(raw), &urls); err != nil {
				return Tree{}, fmt.Errorf("failed to parse legacy parts list: %w", err)
			}
		}
		tree := NewTree()
		for i, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			tree.RootFiles = append(tree.RootFiles, File{
				ID:      fmt.Sprintf("legacy_%d", i),
				Name:    path.Base(u),
				URL:     u,
				Preview: u,
				Type:    TypeFromURL(u),
			})
		}
		return tree, nil
	default:
		var tree Tree
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return Tree{}, fmt.Errorf("failed to parse parts tree: %w", err)
		}
		if tree.RootFiles == nil {
			tree.RootFiles = []File{}
		}
		if tree.Folders == nil {
			tree.Folders = []Folder{}
		}
		return tree, nil
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
}

// TypeFromURL derives the file type from the URL's extension. Query strings
// are ignored; unknown extensions classify as document.
func TypeFromURL(u string) FileType {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if imageExtensions[strings.ToLower(path.Ext(u))] {
		return TypeImage
	}
	return TypeDocument
}

// TypeFromContentType derives the file type at upload time from the MIME
// type, falling back to the filename extension when no MIME type was sent.
func TypeFromContentType(contentType, filename string) FileType {
	if contentType != "" {
		if strings.HasPrefix(contentType, "image/") {
			return TypeImage
		}
		return TypeDocument
	}
	return TypeFromURL(filename)
}
