package checks

import (
	"fmt"
	"reflect"
	"strings"

	"resource-manager/core/catalog"
	"resource-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of checking the catalog table against its model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckCatalogSchema verifies the assets table has every column declared on
// catalog.Asset, with a compatible type where the model names one.
func CheckCatalogSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	table := catalog.Asset{}.TableName()
	report := &SchemaReport{
		Table:          table,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	actual, err := database.GetTableColumns(db, table)
	if err != nil {
		return nil, err
	}
	if len(actual) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	model := reflect.TypeOf(catalog.Asset{})
	for i := 0; i < model.NumField(); i++ {
		tag := model.Field(i).Tag.Get("gorm")
		name := gormSetting(tag, "column")
		if name == "" {
			continue
		}

		col, ok := byName[name]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, name)
			report.Matched = false
			continue
		}

		want := expectedType(model.Field(i).Type.Kind(), gormSetting(tag, "type"))
		if want != "" && !strings.Contains(col.Type, want) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", name, want, col.Type))
			report.Matched = false
		}
	}
	return report, nil
}

// expectedType returns the type fragment a column must contain. MySQL
// reports "int"/"bigint" and "varchar(n)", SQLite "integer" and "text".
func expectedType(kind reflect.Kind, declared string) string {
	if declared != "" {
		return strings.ToLower(declared)
	}
	switch kind {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "int"
	default:
		return ""
	}
}

// gormSetting extracts key:value from a gorm struct tag.
func gormSetting(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
