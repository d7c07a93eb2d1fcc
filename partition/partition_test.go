package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPinnedRegression(t *testing.T) {
	// "Taylor Swift" -> T(84)+S(83), "Love Story" -> L(76)+S(83); 326 % 2 = 0.
	assert.Equal(t, 0, Select("Taylor Swift", "Love Story"))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		track  string
		want   int
	}{
		// T(84)+S(83)+H(72)+H(72) = 311
		{"odd sum", "Taylor Swift", "Hello", 1},
		// single-word names count their initial twice, so they always
		// contribute an even amount
		{"single words", "Adele", "Hello", 0},
		// A(65)+A(65) = 130 plus D(68)+P(80) = 148, total 278
		{"mixed word counts", "Adele", "Deep Pain", 0},
		// leading digits are skipped, "21" holds no letter at all:
		// S(83) + B(66)+A(65) = 214
		{"non-alphabetic words", "21 Savage", "Bank Account", 0},
		{"lowercase equals uppercase", "taylor swift", "love story", 0},
		{"empty artist", "", "Love Story", 1},
		{"both empty degenerate", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.artist, tt.track)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, Count)
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, Select("Daft Punk", "One More Time"), Select("Daft Punk", "One More Time"))
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "audio_0", Tag("Taylor Swift", "Love Story"))
	assert.Equal(t, "audio_1", Tag("Taylor Swift", "Hello"))
	assert.Equal(t, "audio_0", TagFor(0))
	assert.Equal(t, "audio_1", TagFor(1))
}
