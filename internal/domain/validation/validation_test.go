package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCanonicalBase64(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"hello", base64.StdEncoding.EncodeToString([]byte("hello")), true},
		{"empty", "", true},
		{"binary", base64.StdEncoding.EncodeToString([]byte{0, 255, 10, 13}), true},
		{"missing padding", "aGVsbG8", false},
		{"url alphabet", "-_-_", false},
		{"not base64", "hello world!", false},
		{"non canonical trailing bits", "aGVsbG9=", false},
		{"embedded newline", "aGVs\nbG8=", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCanonicalBase64(tt.input))
		})
	}
}

func TestIsCanonicalBase64_RoundTripProperty(t *testing.T) {
	payloads := [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte(strings.Repeat("workout plan ", 64)),
	}
	for _, payload := range payloads {
		encoded := base64.StdEncoding.EncodeToString(payload)
		require.True(t, IsCanonicalBase64(encoded))

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, encoded, base64.StdEncoding.EncodeToString(decoded))
	}
}

func TestCheck_StopsAtFirstFailure(t *testing.T) {
	fe := Check("action", "", Required, MaxLength(6), OneOf("store", "update", "delete"))
	require.NotNil(t, fe)
	assert.Equal(t, "action", fe.Field)
	assert.Equal(t, "The action field is required.", fe.Message)

	fe = Check("action", "destroy!", Required, MaxLength(6), OneOf("store", "update", "delete"))
	require.NotNil(t, fe)
	assert.Contains(t, fe.Message, "greater than 6")

	fe = Check("action", "purge", Required, MaxLength(6), OneOf("store", "update", "delete"))
	require.NotNil(t, fe)
	assert.Equal(t, "The selected action is invalid.", fe.Message)

	assert.Nil(t, Check("action", "store", Required, MaxLength(6), OneOf("store", "update", "delete")))
}

func TestFileName(t *testing.T) {
	assert.Nil(t, FileName("f", "a.txt"))
	assert.Nil(t, FileName("f", "squat video (final).mp4"))
	assert.NotNil(t, FileName("f", "../etc/passwd"))
	assert.NotNil(t, FileName("f", `dir\file.txt`))
	assert.NotNil(t, FileName("f", ".."))
	assert.NotNil(t, FileName("f", "bad\x00name"))
}

func TestRelativePath(t *testing.T) {
	assert.Nil(t, RelativePath("path", "images"))
	assert.Nil(t, RelativePath("path", "workouts/covers"))
	assert.NotNil(t, RelativePath("path", "/abs"))
	assert.NotNil(t, RelativePath("path", "a/../b"))
	assert.NotNil(t, RelativePath("path", "a//b"))
	assert.NotNil(t, RelativePath("path", "images/"))
	assert.NotNil(t, RelativePath("path", "with space"))
}

func TestPipeline(t *testing.T) {
	var p Pipeline
	assert.True(t, p.Valid())

	p.Add(nil)
	p.Add(Check("data.0.filename", strings.Repeat("x", 256), Required, MaxLength(255)))
	p.Fail("data.1.id", "The selected data.1.id is invalid.")

	assert.False(t, p.Valid())
	assert.True(t, p.HasField("data.0.filename"))
	assert.False(t, p.HasField("data.0.content"))
	require.Len(t, p.Errors(), 2)
	assert.Equal(t, "data.1.id", p.Errors()[1].Field)
}

func TestField(t *testing.T) {
	assert.Equal(t, "data.3.attributes.filename", Field("data", 3, "attributes", "filename"))
	assert.Equal(t, "action", Field("action"))
}
