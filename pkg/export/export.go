// Package export writes report rows as CSV or XLSX.
package export

import (
	"io"
	"reflect"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx, case-insensitively. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", errors.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f Format) Ext() string { return string(f) }

// Sheet is a named slice of records. Records must be a slice of structs
// carrying csv tags; the tags become the header row.
type Sheet struct {
	Name    string
	Records interface{}
}

// WriteCSV writes one sheet as CSV.
func WriteCSV(w io.Writer, s Sheet) error {
	if err := gocsv.Marshal(s.Records, w); err != nil {
		return errors.Wrapf(err, "write %s csv", s.Name)
	}
	return nil
}

// WriteXLSX writes every sheet into one workbook.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return errors.Wrap(err, "rename sheet")
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return errors.Wrapf(err, "add sheet %s", s.Name)
		}

		header, rows, err := table(s.Records)
		if err != nil {
			return errors.Wrapf(err, "sheet %s", s.Name)
		}
		if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
			return err
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// table flattens a slice of tagged structs into a header and typed rows.
func table(records interface{}) ([]interface{}, [][]interface{}, error) {
	v := reflect.ValueOf(records)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return nil, nil, errors.Errorf("records must be a slice, got %s", v.Kind())
	}
	elem := v.Type().Elem()
	if elem.Kind() != reflect.Struct {
		return nil, nil, errors.Errorf("records must hold structs, got %s", elem.Kind())
	}

	var fields []int
	var header []interface{}
	for i := 0; i < elem.NumField(); i++ {
		tag := strings.Split(elem.Field(i).Tag.Get("csv"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		fields = append(fields, i)
		header = append(header, tag)
	}

	rows := make([][]interface{}, v.Len())
	for r := 0; r < v.Len(); r++ {
		row := make([]interface{}, len(fields))
		for c, i := range fields {
			row[c] = v.Index(r).Field(i).Interface()
		}
		rows[r] = row
	}
	return header, rows, nil
}
