package rides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a ride on the server. The API hands out integers, but the
// client treats the value as opaque and accepts strings as well.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding ride id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding ride id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Ride is one logged trip as returned by GET /api/corridas.
type Ride struct {
	ID            ID      `json:"id"`
	Platform      string  `json:"plataforma"`
	Value         float64 `json:"valor"`
	Date          string  `json:"data_corrida"`
	Origin        string  `json:"origem"`
	Destination   string  `json:"destino"`
	PaymentMethod string  `json:"forma_pagamento"`
}

// Stats is the server-computed aggregate over all rides.
type Stats struct {
	TotalSpent     float64 `json:"total_gasto"`
	RideCount      int     `json:"total_de_corridas"`
	AveragePerRide float64 `json:"media_por_corrida"`
	MonthTotal     float64 `json:"total_este_mes"`
}

// CreateRequest is the body of POST /api/corridas.
type CreateRequest struct {
	Platform string  `json:"plataforma"`
	Value    float64 `json:"valor"`
	Date     string  `json:"data_corrida"`
}

// UpdateRequest is the partial update accepted by PUT /api/corridas/{id}.
type UpdateRequest struct {
	Platform      string  `json:"plataforma"`
	Value         float64 `json:"valor"`
	PaymentMethod string  `json:"forma_pagamento"`
}

// Result is the confirmation object the API returns for writes.
type Result struct {
	ID      ID     `json:"id,omitempty"`
	Message string `json:"mensagem,omitempty"`
	Error   string `json:"erro,omitempty"`
}

// Created reports whether the server assigned an id to the new ride.
func (r *Result) Created() bool {
	return r != nil && r.ID != ""
}

// Duplicate reports whether the server recognised the ride as one it
// already stores. The API signals this only through its message text.
func (r *Result) Duplicate() bool {
	return r != nil && strings.Contains(strings.ToLower(r.Message), "duplicada")
}
