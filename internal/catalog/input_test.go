package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "term.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromJSONLoadsFullCatalog(t *testing.T) {
	// Arrange
	path := writeCatalogFile(t, `{
		"grid": [2, 2, 0, 0, 0],
		"classes": [
			{"name": "A", "grade": 9, "courses": [
				{"name": "X", "periods": 2, "teachers": "T1,T2", "preferConsecutive": true},
				{"name": "Y", "periods": 1, "teachers": "T3"}
			]},
			{"name": "B", "grade": 9, "courses": [
				{"name": "X", "periods": 2, "teachers": "T1"}
			]}
		],
		"jointSessions": [{"classes": ["A", "B"], "course": "X"}],
		"excluded": {"A": [[1, 2]]},
		"required": {"B": [{"day": 0, "period": 1, "course": "X"}]},
		"teacherJoint": {"T1": [["A", "B"]]},
		"syncRules": [{"trigger": {"class": "A", "course": "X"}, "companions": [{"class": "B", "course": "X"}], "equal": true}],
		"overlapQuotas": [{"satellite": {"class": "A", "course": "Y"}, "references": [{"class": "B", "course": "X"}], "want": 1}],
		"exclusions": [{"teacher": "T1", "first": [{"class": "A", "course": "X"}], "second": [{"class": "B", "course": "X"}]}],
		"trackingLinks": [{"tracking": "B", "admin": ["A"]}],
		"doubleDayRules": [{"class": "A", "course": "X", "limit": 1, "exact": true}],
		"twoPerDay": ["X"],
		"capExempt": ["B"],
		"consecutiveWeights": {"X": 3}
	}`)

	// Act
	c, err := FromJSON(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, [5]int{2, 2, 0, 0, 0}, c.Grid.PeriodsPerDay)
	assert.Len(t, c.Classes, 2)
	assert.Equal(t, []string{"T1", "T2"}, c.Classes["A"].Courses["X"].Teachers)
	assert.True(t, c.Classes["A"].Courses["X"].PreferConsecutive)
	assert.Len(t, c.JointSessions, 1)
	assert.True(t, c.Excluded("A", TimeSlot{Day: 1, Period: 2}))
	course, ok := c.Required("B", TimeSlot{Day: 0, Period: 1})
	assert.True(t, ok)
	assert.Equal(t, "X", course)
	assert.Equal(t, [][]string{{"A", "B"}}, c.TeacherJoint["T1"])
	require.Len(t, c.SyncRules, 1)
	assert.True(t, c.SyncRules[0].Equal)
	require.Len(t, c.OverlapQuotas, 1)
	assert.Equal(t, 1, c.OverlapQuotas[0].Want)
	assert.Len(t, c.Exclusions, 1)
	assert.Len(t, c.TrackingLinks, 1)
	require.Len(t, c.DoubleDayRules, 1)
	assert.True(t, c.DoubleDayRules[0].Exact)
	assert.True(t, c.TwoPerDayCourses["X"])
	assert.True(t, c.CapExemptClasses["B"])
	assert.Equal(t, 3, c.ConsecutiveWeights["X"])
}

func TestFromJSONDefaultsToStandardGrid(t *testing.T) {
	// Arrange
	path := writeCatalogFile(t, `{"classes": [{"name": "A", "grade": 9, "courses": [{"name": "X", "periods": 1, "teachers": "T"}]}]}`)

	// Act
	c, err := FromJSON(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, DefaultGrid(), c.Grid)
}

func TestFromJSONRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"short grid":     `{"grid": [2, 2]}`,
		"nameless class": `{"classes": [{"grade": 9, "courses": []}]}`,
		"zero periods":   `{"classes": [{"name": "A", "grade": 9, "courses": [{"name": "X", "periods": 0, "teachers": "T"}]}]}`,
		"teacherless":    `{"classes": [{"name": "A", "grade": 9, "courses": [{"name": "X", "periods": 1, "teachers": "  "}]}]}`,
		"not even json":  `{`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			// Arrange
			path := writeCatalogFile(t, content)

			// Act
			_, err := FromJSON(path)

			// Assert
			assert.Error(t, err)
		})
	}
}

func TestFromJSONMissingFile(t *testing.T) {
	_, err := FromJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
