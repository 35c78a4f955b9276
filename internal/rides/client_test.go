package rides

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0)
}

func TestDashboardStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/dashboard-stats", r.URL.Path)
		io.WriteString(w, `{"total_gasto": 120.5, "total_de_corridas": 4, "media_por_corrida": 30.13, "total_este_mes": 45}`)
	})

	stats, err := c.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 120.5, stats.TotalSpent, 0.001)
	assert.Equal(t, 4, stats.RideCount)
	assert.InDelta(t, 30.13, stats.AveragePerRide, 0.001)
	assert.InDelta(t, 45.0, stats.MonthTotal, 0.001)
}

func TestListRides(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/corridas", r.URL.Path)
		io.WriteString(w, `[
			{"id": 7, "plataforma": "Uber", "valor": 23.5, "data_corrida": "01/01/2024 10:00",
			 "origem": "Rua A", "destino": null, "forma_pagamento": null},
			{"id": "b-2", "plataforma": "99", "valor": 10}
		]`)
	})

	list, err := c.ListRides(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ID("7"), list[0].ID)
	assert.Equal(t, "Uber", list[0].Platform)
	assert.Equal(t, "Rua A", list[0].Origin)
	assert.Empty(t, list[0].Destination)
	assert.Equal(t, ID("b-2"), list[1].ID)
}

func TestListRides_EmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	list, err := c.ListRides(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreateRide(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Uber", body["plataforma"])
		assert.InDelta(t, 23.5, body["valor"], 0.001)
		assert.Equal(t, "2024-01-01", body["data_corrida"])

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"mensagem": "Corrida adicionada com sucesso!", "id": 1}`)
	})

	res, err := c.CreateRide(context.Background(), CreateRequest{Platform: "Uber", Value: 23.5, Date: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.False(t, res.Duplicate())
}

func TestUpdateRide(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/corridas/42", r.URL.Path)

		var body UpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, UpdateRequest{Platform: "99", Value: 12.25, PaymentMethod: "Pix"}, body)

		io.WriteString(w, `{"mensagem": "Corrida atualizada com sucesso!"}`)
	})

	res, err := c.UpdateRide(context.Background(), "42", UpdateRequest{Platform: "99", Value: 12.25, PaymentMethod: "Pix"})
	require.NoError(t, err)
	assert.Equal(t, "Corrida atualizada com sucesso!", res.Message)
}

func TestDeleteRide_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<html>not found</html>`)
	})

	_, err := c.DeleteRide(context.Background(), "9")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "API error (404)", apiErr.Error())
}

func TestAPIError_ServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"erro": "Dados insuficientes (valor, data_corrida)"}`)
	})

	_, err := c.CreateRide(context.Background(), CreateRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Dados insuficientes (valor, data_corrida)", apiErr.Message)
}

func TestCreateRide_ErrorStatusKeepsResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"mensagem": "corrida duplicada"}`)
	})

	res, err := c.CreateRide(context.Background(), CreateRequest{Platform: "Uber", Value: 10, Date: "2024-01-01"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "corrida duplicada", apiErr.Detail)

	require.NotNil(t, res)
	assert.True(t, res.Duplicate())
	assert.False(t, res.Created())
}

func TestCreateRide_ErrorStatusWithoutJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `<html>bad gateway</html>`)
	})

	res, err := c.CreateRide(context.Background(), CreateRequest{})
	assert.Nil(t, res)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestUnexpectedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<!doctype html><p>maintenance</p>`)
	})

	_, err := c.DashboardStats(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := c.ListRides(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestIDUnmarshal(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"id": 12}`), &r))
	assert.Equal(t, ID("12"), r.ID)
	assert.True(t, r.Created())

	var dup Result
	require.NoError(t, json.Unmarshal([]byte(`{"id": null, "mensagem": "Corrida duplicada, ignorada com sucesso."}`), &dup))
	assert.False(t, dup.Created())
	assert.True(t, dup.Duplicate())
}
