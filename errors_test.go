package globber_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/globber"
)

func TestErrorMarker(t *testing.T) {
	_, err := globber.Glob(42, nil)
	assert.Error(t, err)

	var ge *globber.Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, globber.KindInvalidPatternType, ge.Kind)
}

func TestErrorMarkerSurvivesWrapping(t *testing.T) {
	_, err := globber.Glob(42, nil)
	wrapped := fmt.Errorf("while scanning: %w", err)

	assert.True(t, globber.IsKind(wrapped, globber.KindInvalidPatternType))
	assert.False(t, globber.IsKind(wrapped, globber.KindDirectoryNotFound))
}

func TestErrorMessagesEmbedPath(t *testing.T) {
	err := &globber.Error{Kind: globber.KindBrokenSymbolicLink, Path: "/tmp/dangling"}
	assert.Contains(t, err.Error(), "/tmp/dangling")
	assert.Contains(t, err.Error(), "broken symbolic link")
}

func TestIsKindRejectsForeignErrors(t *testing.T) {
	assert.False(t, globber.IsKind(errors.New("plain"), globber.KindDirectoryNotFound))
	assert.False(t, globber.IsKind(nil, globber.KindDirectoryNotFound))
}
