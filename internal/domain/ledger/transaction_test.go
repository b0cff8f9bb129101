package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, time.March, d.Month())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestDate_Equal(t *testing.T) {
	a := NewDate(2024, time.March, 15)
	b := NewDate(2024, time.March, 15)
	c := NewDate(2024, time.March, 16)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2024, time.March, 15)

	assert.Equal(t, "2024-02-14", d.AddDays(-30).String())
	assert.Equal(t, "2024-03-16", d.AddDays(1).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, d.Equal(decoded))
}

func TestTransaction_UnmarshalKeepsRaw(t *testing.T) {
	// Passthrough fields the module never interprets must survive a
	// decode/encode cycle verbatim.
	raw := `{"id":42,"amount":"-19.9900","payee":"Acme","date":"2024-03-15","category_id":7,"notes":"gift"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, int64(42), tx.ID)
	assert.Equal(t, "-19.9900", tx.Amount)
	assert.Equal(t, "Acme", tx.Payee)
	assert.Equal(t, "2024-03-15", tx.Date.String())

	encoded, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(encoded))
}

func TestTransaction_MarshalWithoutRaw(t *testing.T) {
	tx := Transaction{
		ID:     7,
		Amount: "10.0000",
		Payee:  "Acme",
		Date:   NewDate(2024, time.January, 2),
	}

	encoded, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"amount":"10.0000","payee":"Acme","date":"2024-01-02"}`, string(encoded))
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	raw := `{"id":1,"amount":"5.0000","payee":"Cafe","date":"2024-02-01","tags":["coffee"]}`
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	snap := Snapshot{1: tx}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Contains(t, decoded, int64(1))
	assert.Equal(t, "Cafe", decoded[1].Payee)
	assert.Equal(t, "2024-02-01", decoded[1].Date.String())
	assert.JSONEq(t, raw, string(decoded[1].Raw))
}
