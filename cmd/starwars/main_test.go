package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"migrate", "version"},
		{"seed"},
		{"events"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestSeedRequiresFile(t *testing.T) {
	root := newRootCommand()
	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)

	assert.Error(t, seed.Args(seed, nil))
	assert.NoError(t, seed.Args(seed, []string{"fixtures.yaml"}))
	assert.Equal(t, "10", seed.Flag("bcrypt-cost").DefValue)
}

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p, err := newPublisher(nil)
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
