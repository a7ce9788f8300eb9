package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
)

const mavenTree = `com.example:app:jar:1.0
├── com.example:log-lib:jar:2.1:compile
│   └── com.example:core-util:jar:0.9:compile
└── com.example:core-util:jar:0.9:compile
`

const gradleTree = `com.example:app:1.0
+--- com.example:log-lib:2.1
|    \--- com.example:core-util:0.9
\--- com.example:core-util:0.9
`

func artifactsOf(n *graph.TreeNode) []string {
	out := []string{n.Coordinate.Artifact}
	for _, c := range n.Children {
		out = append(out, artifactsOf(c)...)
	}
	return out
}

func TestTreeTextParser(t *testing.T) {
	p := &TreeTextParser{}

	t.Run("unicode drawing with maven scopes", func(t *testing.T) {
		root, err := p.Parse("deps.txt", []byte(mavenTree))

		require.NoError(t, err)
		assert.Equal(t, models.Coordinate{Group: "com.example", Artifact: "app", Version: "1.0"}, root.Coordinate)
		require.Len(t, root.Children, 2)
		assert.Equal(t, "2.1", root.Children[0].Coordinate.Version)
		require.Len(t, root.Children[0].Children, 1)
		assert.Equal(t, "0.9", root.Children[0].Children[0].Coordinate.Version)
		assert.Equal(t, []string{"app", "log-lib", "core-util", "core-util"}, artifactsOf(root))
	})

	t.Run("ascii drawing", func(t *testing.T) {
		root, err := p.Parse("deps.txt", []byte(gradleTree))

		require.NoError(t, err)
		assert.Equal(t, []string{"app", "log-lib", "core-util", "core-util"}, artifactsOf(root))
	})

	t.Run("both styles agree", func(t *testing.T) {
		a, err := p.Parse("a.txt", []byte(mavenTree))
		require.NoError(t, err)
		b, err := p.Parse("b.txt", []byte(gradleTree))
		require.NoError(t, err)

		assert.Equal(t, artifactsOf(a), artifactsOf(b))
	})

	t.Run("parenthetical notes are dropped", func(t *testing.T) {
		tree := "com.example:app:1.0\n" +
			"└── com.example:core-util:0.9 (version selected by rule)\n"

		root, err := p.Parse("deps.txt", []byte(tree))

		require.NoError(t, err)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "0.9", root.Children[0].Coordinate.Version)
	})

	t.Run("blank and non-coordinate lines are skipped", func(t *testing.T) {
		tree := "com.example:app:1.0\n\n" +
			"├── some note without a coordinate\n" +
			"└── com.example:core-util:0.9\n"

		root, err := p.Parse("deps.txt", []byte(tree))

		require.NoError(t, err)
		require.Len(t, root.Children, 1)
	})

	t.Run("sibling after popping back up", func(t *testing.T) {
		tree := "com.example:app:1.0\n" +
			"├── com.example:a:1.0\n" +
			"│   └── com.example:a-dep:1.0\n" +
			"└── com.example:b:1.0\n"

		root, err := p.Parse("deps.txt", []byte(tree))

		require.NoError(t, err)
		require.Len(t, root.Children, 2)
		assert.Equal(t, "b", root.Children[1].Coordinate.Artifact)
	})

	t.Run("multiple roots are rejected", func(t *testing.T) {
		tree := "com.example:app:1.0\ncom.example:other:1.0\n"

		_, err := p.Parse("deps.txt", []byte(tree))

		assert.ErrorContains(t, err, "multiple roots")
	})

	t.Run("orphan depth is rejected", func(t *testing.T) {
		tree := "com.example:app:1.0\n" +
			"│   └── com.example:floating:1.0\n"

		_, err := p.Parse("deps.txt", []byte(tree))

		assert.ErrorContains(t, err, "no parent")
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, err := p.Parse("deps.txt", []byte("\n\n"))
		assert.ErrorContains(t, err, "no dependencies")
	})
}

func TestTreeJSONParser(t *testing.T) {
	p := &TreeJSONParser{}

	t.Run("explicit fields", func(t *testing.T) {
		content := []byte(`{
			"group": "com.example", "artifact": "app", "version": "1.0",
			"children": [
				{"group": "com.example", "artifact": "core-util", "version": "0.9"}
			]
		}`)

		root, err := p.Parse("deps.json", content)

		require.NoError(t, err)
		assert.Equal(t, "app", root.Coordinate.Artifact)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "core-util", root.Children[0].Coordinate.Artifact)
	})

	t.Run("combined coordinate string", func(t *testing.T) {
		content := []byte(`{
			"coordinate": "com.example:app:1.0",
			"children": [{"coordinate": "com.example:core-util:jar:0.9"}]
		}`)

		root, err := p.Parse("deps.json", content)

		require.NoError(t, err)
		assert.Equal(t, "1.0", root.Coordinate.Version)
		assert.Equal(t, "0.9", root.Children[0].Coordinate.Version)
	})

	t.Run("node without a coordinate is rejected", func(t *testing.T) {
		content := []byte(`{"coordinate": "com.example:app:1.0", "children": [{}]}`)

		_, err := p.Parse("deps.json", content)

		assert.ErrorContains(t, err, "without a coordinate")
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		_, err := p.Parse("deps.json", []byte("{"))
		assert.Error(t, err)
	})
}

func TestParseFile(t *testing.T) {
	t.Run("routes by extension", func(t *testing.T) {
		dir := t.TempDir()

		txt := filepath.Join(dir, "deps.txt")
		require.NoError(t, os.WriteFile(txt, []byte(mavenTree), 0o644))
		jsn := filepath.Join(dir, "deps.json")
		require.NoError(t, os.WriteFile(jsn, []byte(`{"coordinate": "com.example:app:1.0"}`), 0o644))

		fromText, err := ParseFile(txt)
		require.NoError(t, err)
		assert.Equal(t, "app", fromText.Coordinate.Artifact)

		fromJSON, err := ParseFile(jsn)
		require.NoError(t, err)
		assert.Equal(t, "app", fromJSON.Coordinate.Artifact)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})
}
