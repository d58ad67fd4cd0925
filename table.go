package clusterx

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/projectdiscovery/utils/errkit"
)

// FieldType is the type of a column in a Table
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldBool   FieldType = "bool"
)

// DefaultColumn is the column name used for line based inputs
const DefaultColumn = "value"

// Field describes a column
type Field struct {
	Name string
	Type FieldType
}

// Row is one record of a Table
type Row struct {
	Values map[string]interface{}
	// Count is the number of occurrences this row stands for (0 = 1).
	// pre-aggregated sources carry counts > 1
	Count int
}

// Table is the source dataset holding the column to cluster
type Table struct {
	Fields []Field
	Rows   []Row
}

// NewTable creates an empty table with given schema
func NewTable(fields ...Field) *Table {
	return &Table{Fields: fields}
}

// Append adds a row to the table
func (t *Table) Append(values map[string]interface{}, count int) {
	t.Rows = append(t.Rows, Row{Values: values, Count: count})
}

// Field returns field with given name
func (t *Table) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NewTableFromValues returns a single string column table named DefaultColumn
func NewTableFromValues(values []string) *Table {
	t := NewTable(Field{Name: DefaultColumn, Type: FieldString})
	for _, v := range values {
		t.Append(map[string]interface{}{DefaultColumn: v}, 1)
	}
	return t
}

// ReadLines reads one value per line, empty lines are skipped
func ReadLines(r io.Reader) (*Table, error) {
	var values []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errkit.Wrap(err, "could not read input lines")
	}
	return NewTableFromValues(values), nil
}

// ReadCSV reads a csv with header row. All columns are string typed except
// countColumn (if not empty) which must hold integers and is used as row count.
func ReadCSV(r io.Reader, countColumn string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, errkit.Wrap(err, "could not read csv header")
	}
	countIdx := -1
	fields := make([]Field, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if countColumn != "" && name == countColumn {
			countIdx = i
			fields = append(fields, Field{Name: name, Type: FieldInt})
			continue
		}
		fields = append(fields, Field{Name: name, Type: FieldString})
	}
	if countColumn != "" && countIdx < 0 {
		return nil, errkit.New("count column not found in csv header: " + countColumn)
	}

	t := NewTable(fields...)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errkit.Wrap(err, "could not read csv record")
		}
		values := make(map[string]interface{}, len(header))
		count := 1
		for i, name := range header {
			if i >= len(record) {
				break
			}
			if i == countIdx {
				n, err := strconv.Atoi(strings.TrimSpace(record[i]))
				if err != nil {
					return nil, errkit.Wrap(err, "invalid count on csv line "+strconv.Itoa(line))
				}
				values[name] = n
				count = n
				continue
			}
			values[name] = record[i]
		}
		t.Append(values, count)
	}
	return t, nil
}
