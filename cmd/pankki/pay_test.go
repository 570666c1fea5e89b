package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayCmd(t *testing.T) {
	cmd := payCmd()

	flag := cmd.Flag("description")
	assert.NotNil(t, flag, "description flag should exist")
	assert.Equal(t, "m", flag.Shorthand)

	assert.NotNil(t, cmd.Flag("recipient"), "recipient flag should exist")
	assert.NotNil(t, cmd.Flag("iban"), "iban flag should exist")

	// pay takes exactly the amount argument
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"25.50"}))
	assert.Error(t, cmd.Args(cmd, []string{"25.50", "extra"}))
}
