package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type fakeKeyer []string

func (f fakeKeyer) Keys() []string { return f }

func TestLsMappingsOnly_ListsOnlyDirectMappedChildren(t *testing.T) {
	repo := fakeKeyer{"/assets", "/assets/css", "/assets/css/vendor", "/other"}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, lsMappingsOnly(cmd, repo, "/assets"))
	require.Equal(t, "/assets/css\n", out.String())
}

func TestLsMappingsOnly_EmptyWhenNoDirectMappings(t *testing.T) {
	repo := fakeKeyer{"/assets/css/vendor"}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, lsMappingsOnly(cmd, repo, "/assets"))
	require.Empty(t, out.String())
}

func TestLsMappingsOnly_RejectsInvalidVPath(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := lsMappingsOnly(cmd, fakeKeyer{}, "relative")
	require.Error(t, err)
}
