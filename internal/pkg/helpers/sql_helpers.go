package helpers

// NullableString maps an empty form value to a nil pointer so optional
// columns are stored as NULL instead of empty strings. Unique indexes on
// nullable columns only bite on real values.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue converts a nullable column value back to a plain string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
