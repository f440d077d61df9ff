package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSONAttachesBearerFromContext(t *testing.T) {
	var authz []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = append(authz, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := WithBearer(context.Background(), "upstream-abc")
	require.NoError(t, doJSON(ctx, srv.Client(), http.MethodGet, srv.URL, nil, nil))
	require.NoError(t, doJSON(context.Background(), srv.Client(), http.MethodGet, srv.URL, nil, nil))

	require.Len(t, authz, 2)
	assert.Equal(t, "Bearer upstream-abc", authz[0])
	assert.Equal(t, "", authz[1])
}

func TestWithBearerIgnoresEmptyToken(t *testing.T) {
	assert.Equal(t, "", BearerFrom(WithBearer(context.Background(), "")))
	assert.Equal(t, "tok", BearerFrom(WithBearer(context.Background(), "tok")))
}

func TestDecodeValueWrappedBareArray(t *testing.T) {
	var out []int
	err := decodeValueWrapped(json.RawMessage(`[1, 2, 3]`), &out)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out)
}

func TestDecodeValueWrappedEnvelope(t *testing.T) {
	var out []string
	err := decodeValueWrapped(json.RawMessage(`{"value": ["a", "b"]}`), &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDecodeValueWrappedRejectsOtherShapes(t *testing.T) {
	var out []int
	assert.Error(t, decodeValueWrapped(json.RawMessage(`{"items": [1]}`), &out))
	assert.Error(t, decodeValueWrapped(json.RawMessage(`"scalar"`), &out))
	assert.Error(t, decodeValueWrapped(json.RawMessage(``), &out))
}

func rawObject(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &obj))
	return obj
}

func TestPickIntAcceptsCasingVariants(t *testing.T) {
	obj := rawObject(t, `{"IdReserva": 42}`)
	n, ok := pickInt(obj, "idReserva", "IdReserva", "id_reserva")
	require.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestPickIntAcceptsStringNumbers(t *testing.T) {
	obj := rawObject(t, `{"id": "17"}`)
	n, ok := pickInt(obj, "id")
	require.True(t, ok)
	assert.Equal(t, 17, n)
}

func TestPickIntIgnoresNull(t *testing.T) {
	obj := rawObject(t, `{"id": null}`)
	_, ok := pickInt(obj, "id")
	assert.False(t, ok)
}

func TestPickStringAndFloat(t *testing.T) {
	obj := rawObject(t, `{"estado": "CONFIRMADO", "costoTotal": 320.5}`)
	assert.Equal(t, "CONFIRMADO", pickString(obj, "estado", "Estado"))
	assert.Equal(t, 320.5, pickFloat(obj, "costoTotal", "CostoTotal"))
	assert.Equal(t, "", pickString(obj, "missing"))
}

func TestPickBoolFallback(t *testing.T) {
	obj := rawObject(t, `{"activo": false}`)
	assert.False(t, pickBool(obj, true, "activo"))
	assert.True(t, pickBool(obj, true, "missing"))
}
