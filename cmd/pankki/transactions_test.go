package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, subcmd := range cmd.Commands() {
		if subcmd.Name() == name {
			return subcmd
		}
	}
	return nil
}

func TestTransactionsCmd(t *testing.T) {
	cmd := transactionsCmd()

	for _, name := range []string{"list", "add", "edit", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
	assert.Contains(t, cmd.Aliases, "tx")
}

func TestTransactionsAddCmd_RequiredFlags(t *testing.T) {
	cmd := transactionsAddCmd()

	for _, name := range []string{"title", "amount", "type"} {
		flag := cmd.Flag(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "true", flag.Annotations[cobra.BashCompOneRequiredFlag][0],
			"%s should be required", name)
	}
}

func TestTransactionsEditCmd_TakesID(t *testing.T) {
	cmd := transactionsEditCmd()

	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"1001"}))
}

func TestReportCmd_Flags(t *testing.T) {
	cmd := reportCmd()

	for _, name := range []string{"from", "to", "type", "export", "out"} {
		assert.NotNil(t, cmd.Flag(name), "%s flag should exist", name)
	}
}

func TestReportFilter_Validation(t *testing.T) {
	cmd := reportCmd()
	require.NoError(t, cmd.Flags().Set("type", "sideways"))

	_, err := reportFilter(cmd)
	assert.Error(t, err)
}

func TestReportFilter_InclusiveToDate(t *testing.T) {
	cmd := reportCmd()
	require.NoError(t, cmd.Flags().Set("to", "2025-10-31"))

	filter, err := reportFilter(cmd)
	require.NoError(t, err)
	require.NotNil(t, filter.To)
	assert.Equal(t, 31, filter.To.Day())
	assert.Equal(t, 23, filter.To.Hour(), "end date is inclusive through end of day")
}

func TestSettingsCmd(t *testing.T) {
	cmd := settingsCmd()

	for _, name := range []string{"show", "set-holder", "set-company", "set-iban", "set-balance"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}
