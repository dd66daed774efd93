// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "ovhcompute", cmd.Use)
	assert.Equal(t, "Manage OVH Public Cloud compute resources", cmd.Short)
	assert.True(t, cmd.SilenceErrors)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expected := []string{"disk", "instance", "template", "image", "route", "backend-service", "firewall"}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, subcommands[name], "Expected subcommand %s not found", name)
	}
	assert.Len(t, cmd.Commands(), len(expected))
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	tests := []struct {
		name      string
		shorthand string
	}{
		{name: "config", shorthand: "c"},
		{name: "project"},
		{name: "region"},
		{name: "zone"},
		{name: "log-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, "", flag.DefValue)
		})
	}
}

func TestRoot_GroupVerbs(t *testing.T) {
	tests := []struct {
		group string
		verbs []string
	}{
		{group: "disk", verbs: []string{"create", "resize", "delete", "list"}},
		{group: "instance", verbs: []string{"create", "resize", "delete", "list"}},
		{group: "template", verbs: []string{"create", "delete"}},
		{group: "image", verbs: []string{"create", "delete", "list"}},
		{group: "route", verbs: []string{"create", "delete", "list"}},
		{group: "backend-service", verbs: []string{"create", "delete"}},
		{group: "firewall", verbs: []string{"create", "delete", "list"}},
	}

	root := Root()
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			group, _, err := root.Find([]string{tt.group})
			require.NoError(t, err)

			var names []string
			for _, sub := range group.Commands() {
				names = append(names, sub.Name())
			}
			assert.ElementsMatch(t, tt.verbs, names)
		})
	}
}

func TestMutatingCommands_RequireNames(t *testing.T) {
	root := Root()

	for _, path := range [][]string{
		{"disk", "create"},
		{"disk", "resize"},
		{"instance", "delete"},
		{"firewall", "create"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Error(t, cmd.Args(cmd, nil), "%v should require a name", path)
		assert.NoError(t, cmd.Args(cmd, []string{"a", "b"}))
	}
}

func TestListCommands_TakeNoArgs(t *testing.T) {
	root := Root()

	cmd, _, err := root.Find([]string{"disk", "list"})
	require.NoError(t, err)
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
	assert.NoError(t, cmd.Args(cmd, nil))
}

func findFlag(t *testing.T, root *cobra.Command, path []string, name string) string {
	t.Helper()
	cmd, _, err := root.Find(path)
	require.NoError(t, err)
	flag := cmd.Flags().Lookup(name)
	require.NotNil(t, flag, "%s flag should exist on %v", name, path)
	return flag.DefValue
}
