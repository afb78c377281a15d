package logger_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/pkg/util/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	l, err := logger.NewLogger(nil)
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, l.Level())

	var prm logger.Prm
	require.NoError(t, prm.SetLevelString("debug"))
	require.NoError(t, prm.SetEncoding(logger.EncodingJSON))

	l, err = logger.NewLogger(&prm)
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, l.Level())
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, prm.SetLevelString("error"))
	l.Reload(prm)
	require.Equal(t, zapcore.ErrorLevel, l.Level())
	require.False(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestPrm(t *testing.T) {
	var prm logger.Prm

	require.Error(t, prm.SetLevelString("verbose"))
	require.Error(t, prm.SetEncoding("xml"))
}
