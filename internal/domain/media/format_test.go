package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{5, "5 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2359296, "2.25 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanReadableSize(tt.size), "size %d", tt.size)
	}
}

func TestFileNameHelpers(t *testing.T) {
	assert.Equal(t, "jpg", Extension("Photo.JPG"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, "archive.tar", DisplayName("archive.tar.gz"))
	assert.Equal(t, ".env", DisplayName(".env"))

	taken := map[string]struct{}{"a.txt": {}, "a-2.txt": {}, ".env": {}}
	assert.Equal(t, "b.txt", UniqueFileName("b.txt", taken))
	assert.Equal(t, "a-3.txt", UniqueFileName("a.txt", taken))
	assert.Equal(t, ".env-2", UniqueFileName(".env", taken))
}

func TestStorageKeyAndURL(t *testing.T) {
	key := StorageKey("dir_1", "images/large", "a b.txt")
	assert.Equal(t, "dir_1/images/large/a b.txt", key)
	assert.Equal(t, "https://cdn.test/files/dir_1/images/large/a%20b.txt", PublicURL("https://cdn.test/files/", key))
}

func TestTypeFromMime(t *testing.T) {
	assert.Equal(t, "image", TypeFromMime("image/png"))
	assert.Equal(t, "video", TypeFromMime("video/mp4"))
	assert.Equal(t, "audio", TypeFromMime("audio/mpeg"))
	assert.Equal(t, "document", TypeFromMime("text/plain"))
	assert.Equal(t, "document", TypeFromMime("application/pdf"))
	assert.Equal(t, "other", TypeFromMime("application/zip"))
}

func TestMediaMethods(t *testing.T) {
	m := &Media{DirectoryID: "dir_1", Collection: "docs", FileName: "plan.PDF", Size: 2048}
	assert.Equal(t, "pdf", m.Extension())
	assert.Equal(t, "2 KB", m.HumanReadableSize())
	assert.Equal(t, "dir_1/docs/plan.PDF", m.StorageKey())
}
