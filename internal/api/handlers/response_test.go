package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "занято"}, body)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Corte"}`))
		var p payload
		require.NoError(t, DecodeJSON(r, &p))
		assert.Equal(t, "Corte", p.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Corte","price":1}`))
		var p payload
		assert.Error(t, DecodeJSON(r, &p))
	})

	t.Run("broken json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		assert.Error(t, DecodeJSON(r, &p))
	})
}

func TestParseInt64(t *testing.T) {
	id, err := ParseInt64(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, in := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseInt64(in)
		assert.Error(t, err, in)
	}
}

func TestParseInt64List(t *testing.T) {
	ids, err := ParseInt64List("1, 2,2")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 2}, ids)

	_, err = ParseInt64List("")
	assert.ErrorIs(t, err, ErrEmptyParam)

	_, err = ParseInt64List("1,,2")
	assert.Error(t, err)

	_, err = ParseInt64List("1,x")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 6, int(d.Month()))
	assert.Equal(t, 1, d.Day())

	_, err = ParseDate("01.06.2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrEmptyParam)
}
