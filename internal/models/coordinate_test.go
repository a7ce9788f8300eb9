package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/depfix/internal/models"
)

func TestParseCoordinate(t *testing.T) {
	t.Run("group artifact version", func(t *testing.T) {
		c, err := models.ParseCoordinate("com.fasterxml.jackson.core:jackson-databind:2.13.0")

		require.NoError(t, err)
		assert.Equal(t, "com.fasterxml.jackson.core", c.Group)
		assert.Equal(t, "jackson-databind", c.Artifact)
		assert.Equal(t, "2.13.0", c.Version)
	})

	t.Run("packaging segment is skipped", func(t *testing.T) {
		c, err := models.ParseCoordinate("org.hibernate:hibernate-core:jar:5.6.0.Final")

		require.NoError(t, err)
		assert.Equal(t, "hibernate-core", c.Artifact)
		assert.Equal(t, "5.6.0.Final", c.Version)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		c, err := models.ParseCoordinate("  com.example:app:1.0  ")

		require.NoError(t, err)
		assert.Equal(t, "1.0", c.Version)
	})

	t.Run("too few segments", func(t *testing.T) {
		_, err := models.ParseCoordinate("jackson-databind:2.13.0")
		assert.ErrorContains(t, err, "invalid coordinate")
	})
}

func TestCoordinate(t *testing.T) {
	a := models.Coordinate{Group: "com.example", Artifact: "core-util", Version: "0.9"}
	b := models.Coordinate{Group: "com.example", Artifact: "core-util", Version: "1.0.0"}
	c := models.Coordinate{Group: "com.example", Artifact: "log-lib", Version: "0.9"}

	assert.Equal(t, "com.example:core-util", a.GA())
	assert.Equal(t, "com.example:core-util:0.9", a.String())
	assert.True(t, a.SameLibrary(b))
	assert.False(t, a.SameLibrary(c))
}
