package main

import (
	"bytes"
	"strings"
	"testing"

	"adresse-geocoder/internal/models"
	"adresse-geocoder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		addressColumn  int
		cityCodeColumn int
		expected       []service.AddressCityCode
		expectedErr    string
	}{
		{
			name:           "address only",
			input:          "id,address\n1,2 rue de la paix 75002 Paris\n2,8 bd du port\n",
			addressColumn:  1,
			cityCodeColumn: -1,
			expected: []service.AddressCityCode{
				{Address: "2 rue de la paix 75002 Paris"},
				{Address: "8 bd du port"},
			},
		},
		{
			name:           "address and citycode",
			input:          "address,citycode\n2 rue de la paix,75102\n",
			addressColumn:  0,
			cityCodeColumn: 1,
			expected: []service.AddressCityCode{
				{Address: "2 rue de la paix", CityCode: "75102"},
			},
		},
		{
			name:           "header only",
			input:          "address\n",
			cityCodeColumn: -1,
		},
		{
			name:           "empty file",
			input:          "",
			cityCodeColumn: -1,
		},
		{
			name:           "missing address column",
			input:          "id,address\n1\n",
			addressColumn:  1,
			cityCodeColumn: -1,
			expectedErr:    "line 2: missing address column 1",
		},
		{
			name:           "missing citycode column",
			input:          "address,citycode\n2 rue de la paix\n",
			cityCodeColumn: 1,
			expectedErr:    "line 2: missing citycode column 1",
		},
		{
			name:           "negative address column",
			input:          "address\nx\n",
			addressColumn:  -1,
			cityCodeColumn: -1,
			expectedErr:    "invalid address column: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseCSV(strings.NewReader(tt.input), tt.addressColumn, tt.cityCodeColumn)
			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	lon, lat := 2.331289, 48.869156
	items := []service.AddressCityCode{
		{Address: "2 rue de la paix", CityCode: "75102"},
		{Address: "abc"},
	}
	results := []models.LookupResult{
		{
			Found: true, Status: models.StatusFound, Query: "2 rue de la paix",
			Longitude: &lon, Latitude: &lat,
			PostalCode: "75002", CityCode: "75102", City: "Paris", Label: "2 Rue de la Paix 75002 Paris",
		},
		models.NotFound("abc"),
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, items, results))

	expected := "address,input_citycode,found,status,longitude,latitude,postcode,citycode,city,label\n" +
		"2 rue de la paix,75102,true,found,2.331289,48.869156,75002,75102,Paris,2 Rue de la Paix 75002 Paris\n" +
		"abc,,false,not_found,,,,,,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_LengthMismatch(t *testing.T) {
	err := writeCSV(&bytes.Buffer{}, []service.AddressCityCode{{Address: "a"}}, nil)
	assert.EqualError(t, err, "result count mismatch: 1 inputs, 0 results")
}
