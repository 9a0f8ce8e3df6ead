package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultIsIndonesian(t *testing.T) {
	tx := Default()

	assert.Equal(t, language.Indonesian, tx.Tag())
	assert.Equal(t, "Mohon masukkan URL terlebih dahulu!", tx.Get(AlertEmptyURL))
	assert.Equal(t, "Terjadi kesalahan koneksi. Silakan coba lagi.", tx.Get(AlertConnection))
	assert.Equal(t, "PHISHING DETECTED!", tx.Get(PhishingHeadline))
	assert.Equal(t, "URL AMAN", tx.Get(SafeHeadline))
}

func TestParse(t *testing.T) {
	tests := []struct {
		code string
		want language.Tag
	}{
		{code: "", want: language.Indonesian},
		{code: "id", want: language.Indonesian},
		{code: "en", want: language.English},
		{code: "en-US", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tx, err := Parse(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tx.Tag())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not a language")
	assert.Error(t, err)
}

func TestGet_WithArgs(t *testing.T) {
	tx := New(language.English)
	assert.Equal(t, `Unrecognized response: "Maybe"`, tx.Get(UnrecognizedResult, "Maybe"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range texts[language.Indonesian] {
		_, ok := texts[language.English][key]
		assert.True(t, ok, "missing english text for %s", key)
	}
}
