package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	created := time.Date(1995, time.August, 24, 9, 0, 0, 0, time.UTC)
	root, _ := seedTree(created)

	// Add nested folders and multi-byte content on top of the seed.
	docs, _ := root.child("documents")
	deep := newFolder("深い", created.Add(time.Hour))
	docs.attach(deep)
	file := newFile("ノート.txt", "héllo wörld – 日本語のテキスト 🖥️", created.Add(2*time.Hour))
	deep.attach(file)

	data, err := serializeTree(root)
	require.NoError(t, err)

	restored, index, err := deserializeTree(data)
	require.NoError(t, err)

	require.NotNil(t, restored)
	assert.True(t, restored.IsRoot())

	got, ok := index["/documents/深い/ノート.txt"]
	require.True(t, ok, "multi-byte path should survive the round trip")
	assert.Equal(t, "héllo wörld – 日本語のテキスト 🖥️", got.Content)
	assert.Equal(t, file.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(created.Add(2*time.Hour)), "timestamps preserved")
	assert.Equal(t, "/documents/深い", got.parent.Path)

	// Structural equality: same paths on both sides.
	var before, after int
	root.walk(func(*Node) { before++ })
	restored.walk(func(*Node) { after++ })
	assert.Equal(t, before, after)
}

func TestSerializePreservesInsertionOrder(t *testing.T) {
	now := time.Now()
	root := newFolder("/", now)
	root.Path = "/"

	for _, name := range []string{"zulu", "alpha", "mike"} {
		root.attach(newFolder(name, now))
	}

	data, err := serializeTree(root)
	require.NoError(t, err)

	restored, _, err := deserializeTree(data)
	require.NoError(t, err)

	var names []string
	for _, c := range restored.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, names)
}

func TestDeserializeRejectsStructuralDefects(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"version":`,
		"missing root":   `{"version":1}`,
		"file root":      `{"version":1,"root":{"id":"x","name":"/","kind":"file"}}`,
		"unknown kind":   `{"version":1,"root":{"id":"x","name":"/","kind":"folder","children":{"a":{"id":"y","name":"a","kind":"wat"}},"order":["a"]}}`,
		"missing id":   `{"version":1,"root":{"name":"/","kind":"folder"}}`,
		"nameless kid": `{"version":1,"root":{"id":"x","name":"/","kind":"folder","children":{"":{"id":"y","name":"","kind":"file"}}}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := deserializeTree([]byte(payload))
			assert.Error(t, err)
		})
	}
}

func TestDeserializeToleratesMissingOrder(t *testing.T) {
	payload := `{"version":1,"root":{"id":"r","name":"/","kind":"folder","children":{
		"b":{"id":"1","name":"b","kind":"folder"},
		"a":{"id":"2","name":"a","kind":"file","content":"x"}
	}}}`

	root, index, err := deserializeTree([]byte(payload))
	require.NoError(t, err)
	assert.Len(t, index, 3)

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names, "orderless snapshots fall back to sorted names")
}
