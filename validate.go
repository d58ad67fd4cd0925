package clusterx

import "fmt"

// InvalidColumnError is returned when the column to cluster is empty,
// missing from the table schema or not string typed
type InvalidColumnError struct {
	Column string
	Reason string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column %q: %s", e.Column, e.Reason)
}

// ValidateColumn checks column references an existing string column of table
func ValidateColumn(table *Table, column string) error {
	if column == "" {
		return &InvalidColumnError{Column: column, Reason: "column name can not be empty"}
	}
	if table == nil {
		return &InvalidColumnError{Column: column, Reason: "no source table"}
	}
	field, ok := table.Field(column)
	if !ok {
		return &InvalidColumnError{Column: column, Reason: "column does not exist in table"}
	}
	if field.Type != FieldString {
		return &InvalidColumnError{Column: column, Reason: fmt.Sprintf("column is of type %v, expected %v", field.Type, FieldString)}
	}
	return nil
}
