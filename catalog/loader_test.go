package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Assessment Name,URL,Duration,Remote Testing Support,Adaptive/IRT,Test Type,Skills,Description
Java Developer Test,https://example.com/java,40 mins,Yes,No,Coding,"java, spring",Backend Java assessment
Verbal Reasoning,https://example.com/verbal,30,No,Yes,Cognitive,"verbal reasoning",
Personality Profile,,Untimed,Yes,No,Personality,,Workplace personality questionnaire
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	t.Run("field coercion", func(t *testing.T) {
		java := records[0]
		assert.Equal(t, "Java Developer Test", java.Name)
		assert.Equal(t, "https://example.com/java", java.URL)
		assert.Equal(t, 40, java.DurationMinutes)
		assert.True(t, java.RemoteCapable)
		assert.False(t, java.Adaptive)
		assert.Equal(t, "Coding", java.Category)
		assert.Equal(t, "java, spring", java.Skills)
	})

	t.Run("free-text duration extracts digits", func(t *testing.T) {
		assert.Equal(t, 40, records[0].DurationMinutes)
		assert.Equal(t, 30, records[1].DurationMinutes)
	})

	t.Run("missing fields resolve to zero values", func(t *testing.T) {
		personality := records[2]
		assert.Equal(t, "", personality.URL)
		assert.Equal(t, 0, personality.DurationMinutes) // "Untimed" has no digits
		assert.Equal(t, "", personality.Skills)
	})

	t.Run("yes/no coercion", func(t *testing.T) {
		assert.False(t, records[1].RemoteCapable)
		assert.True(t, records[1].Adaptive)
	})
}

func TestRead_HeaderAliases(t *testing.T) {
	csv := "Name,Category,Link,Duration (Minutes)\nQuick Quiz,Aptitude,https://x,15\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Quick Quiz", records[0].Name)
	assert.Equal(t, "Aptitude", records[0].Category)
	assert.Equal(t, "https://x", records[0].URL)
	assert.Equal(t, 15, records[0].DurationMinutes)
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	csv := "URL,Duration\nhttps://x,30\n"
	_, err := Read(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestRead_EmptySource(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrCatalogUnreadable)
}

func TestRead_RaggedRows(t *testing.T) {
	csv := "Assessment Name,Test Type,Duration\nShort Row,Coding\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].DurationMinutes)
}

func TestRead_SkipsNamelessRows(t *testing.T) {
	csv := "Assessment Name,Test Type\n,Coding\nReal Test,Cognitive\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Real Test", records[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, ErrCatalogUnreadable)
}
