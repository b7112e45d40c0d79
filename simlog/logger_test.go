//go:build unit
// +build unit

package simlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
)

func TestNew_StdoutOnlyConfig(t *testing.T) {
	conf := &core.Conf{DevMode: true, LogLevel: "debug"}

	logger, err := New(conf)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_RejectsUnwritableLogDir(t *testing.T) {
	conf := &core.Conf{EnableFileLog: true, LogDir: "/does/not/exist"}

	_, err := New(conf)
	assert.Error(t, err)
}
