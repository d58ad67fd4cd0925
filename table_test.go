package clusterx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	table, err := ReadLines(strings.NewReader("color\r\ncolour\n\n  \nflavor\n"))
	require.Nil(t, err)
	require.Equal(t, []Field{{Name: DefaultColumn, Type: FieldString}}, table.Fields)
	require.Len(t, table.Rows, 3)
	require.Equal(t, "colour", table.Rows[1].Values[DefaultColumn])
	require.Equal(t, 1, table.Rows[1].Count)
}

func TestReadCSV(t *testing.T) {
	input := "city,country,count\nBerlin,DE,3\nberlin,DE,2\n"
	table, err := ReadCSV(strings.NewReader(input), "count")
	require.Nil(t, err)
	require.Equal(t, []Field{
		{Name: "city", Type: FieldString},
		{Name: "country", Type: FieldString},
		{Name: "count", Type: FieldInt},
	}, table.Fields)
	require.Len(t, table.Rows, 2)
	require.Equal(t, 3, table.Rows[0].Count)
	require.Equal(t, "berlin", table.Rows[1].Values["city"])
	require.Equal(t, 2, table.Rows[1].Values["count"])

	// without count column every column is a string
	table, err = ReadCSV(strings.NewReader(input), "")
	require.Nil(t, err)
	f, ok := table.Field("count")
	require.True(t, ok)
	require.Equal(t, FieldString, f.Type)
	require.Equal(t, 1, table.Rows[0].Count)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("city\nBerlin\n"), "count")
	require.NotNil(t, err)

	_, err = ReadCSV(strings.NewReader("city,count\nBerlin,many\n"), "count")
	require.NotNil(t, err)

	_, err = ReadCSV(strings.NewReader(""), "")
	require.NotNil(t, err)
}
