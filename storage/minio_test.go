package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectName(t *testing.T) {
	name := newObjectName()
	assert.Len(t, name, 32)
	assert.NotContains(t, name, "-")

	// Names must not collide between uploads.
	assert.NotEqual(t, name, newObjectName())
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".wav", extensionFor("audio/wav"))
	assert.Equal(t, ".wav", extensionFor("audio/x-wav"))
	assert.Equal(t, ".mp3", extensionFor("audio/mpeg"))
	assert.Equal(t, ".mp3", extensionFor("audio/mp3"))
	assert.Equal(t, "", extensionFor("application/octet-stream"))
}
