package partsService

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

func sanitizeSegment(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// ObjectKey derives a collision-free storage key for a new upload:
//
//	{containerPrefix}/parts-management/{folder}/{position}_{base}_{unixMillis}_{uuid}.{ext}
//
// folderName empty means root. position is the file's 1-based index within
// its container at upload time. The timestamp plus uuid keep keys unique
// even for identical names uploaded in the same millisecond.
func ObjectKey(containerPrefix, folderName string, position int, filename string) string {
	folderSegment := "root"
	if folderName != "" {
		folderSegment = sanitizeSegment(folderName)
	}

	ext := strings.ToLower(path.Ext(filename))
	base := sanitizeSegment(strings.TrimSuffix(filename, path.Ext(filename)))

	key := fmt.Sprintf("%s/parts-management/%s/%d_%s_%d_%s",
		containerPrefix,
		folderSegment,
		position,
		base,
		time.Now().UnixMilli(),
		uuid.New().String(),
	)
	if ext != "" {
		key += ext
	}
	return key
}

// ObjectKeyFromURL recovers a storage key from a previously issued public
// URL by locating the bucket marker segment and joining everything after
// it. The second return is false when the marker is absent; callers treat
// that as a non-fatal skip.
func ObjectKeyFromURL(rawURL, bucket string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == bucket && i+1 < len(segments) {
			return strings.Join(segments[i+1:], "/"), true
		}
	}
	return "", false
}
