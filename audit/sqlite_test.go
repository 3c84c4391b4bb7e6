package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaazielocasio-source/sistema-de-banco/audit"
)

func newTestSink(t *testing.T) *audit.SQLiteSink {
	t.Helper()
	sink, err := audit.NewSQLiteSink(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestSQLiteSink_PersistsEvents(t *testing.T) {
	sink := newTestSink(t)

	sink.Log("TX.DEPOSIT", "Cuenta AC100000 Depósito 100", "AC100000")
	sink.Log("TX.DEPOSIT", "Cuenta AC100001 Depósito 200", "AC100001")
	sink.Log("TX.WITHDRAW", "Cuenta AC100000 Retiro 50", "AC100000")

	deposits, err := sink.Count("TX.DEPOSIT")
	require.NoError(t, err)
	assert.Equal(t, 2, deposits)

	withdrawals, err := sink.Count("TX.WITHDRAW")
	require.NoError(t, err)
	assert.Equal(t, 1, withdrawals)
}

func TestSQLiteSink_UnknownAction_ZeroCount(t *testing.T) {
	sink := newTestSink(t)

	n, err := sink.Count("NOPE")

	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
