package transcriber

import (
	"errors"
	"testing"

	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognitionIsForwardOnly(t *testing.T) {
	rec := FromFragments([]models.Fragment{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
	}, models.Metadata{Language: "en"})

	_, err := rec.Metadata()
	require.ErrorIs(t, err, ErrNotDrained)

	var texts []string
	for rec.Next() {
		texts = append(texts, rec.Fragment().Text)
	}
	assert.Equal(t, []string{"one", "two"}, texts)
	assert.NoError(t, rec.Err())

	meta, err := rec.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "en", meta.Language)

	// A drained stream cannot be enumerated again.
	assert.False(t, rec.Next())
}

func TestRecognitionError(t *testing.T) {
	boom := errors.New("decoder crashed")
	calls := 0
	rec := NewRecognition(func() (models.Fragment, bool, error) {
		calls++
		if calls == 1 {
			return models.Fragment{Text: "partial"}, true, nil
		}
		return models.Fragment{}, false, boom
	}, func() models.Metadata { return models.Metadata{} })

	assert.True(t, rec.Next())
	assert.False(t, rec.Next())
	assert.ErrorIs(t, rec.Err(), boom)

	_, err := rec.Metadata()
	assert.ErrorIs(t, err, boom)

	assert.False(t, rec.Next())
	assert.Equal(t, 2, calls)
}
